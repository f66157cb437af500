package middleware

import (
	"github.com/gofiber/fiber/v2"

	"vidya/backend/config"
	"vidya/backend/session"
	"vidya/backend/utils"
)

// AuthMiddleware requires a valid session token belonging to the active
// session. A token from a logged-out or replaced session is rejected even
// if its signature still verifies.
func AuthMiddleware(cfg *config.Config, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		user, ok := store.CurrentUser()
		if !ok || user.ID != userID {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

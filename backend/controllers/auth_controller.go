package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vidya/backend/config"
	"vidya/backend/i18n"
	"vidya/backend/models"
	"vidya/backend/session"
	"vidya/backend/utils"
)

type AuthController struct {
	Store *session.Store
	Cfg   *config.Config
}

func NewAuthController(store *session.Store, cfg *config.Config) *AuthController {
	return &AuthController{Store: store, Cfg: cfg}
}

// localized resolves the request's language and returns its message bundle.
func localized(c *fiber.Ctx) i18n.Bundle {
	lang := i18n.Negotiate(c.Query("lang"), c.Get("Accept-Language"))
	return i18n.For(lang)
}

// fieldMessages translates validation keys into the request's language.
func fieldMessages(b i18n.Bundle, fields session.FieldErrors) map[string]string {
	out := make(map[string]string, len(fields))
	for field, key := range fields {
		out[field] = b.Validation(key)
	}
	return out
}

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// [+] Register godoc
// @Summary Register a new learner
// @Description Validates the registration form and starts a fresh session
// @Tags auth
// @Accept json
// @Produce json
// @Param input body session.RegisterInput true "Registration form"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var in session.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Store.Register(in)
	if err != nil {
		var fields session.FieldErrors
		if errors.As(err, &fields) {
			return utils.ValidationError(c, fieldMessages(localized(c), fields))
		}
		return utils.InternalServerError(c, "Could not register")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"token": token,
		"user":  userPayload(user),
	})
}

// [+] Login godoc
// @Summary Learner login
// @Description Starts a session for the given email, resuming persisted progress when present
// @Tags auth
// @Accept json
// @Produce json
// @Param input body session.LoginInput true "Login form"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in session.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Store.Login(in)
	if err != nil {
		var fields session.FieldErrors
		if errors.As(err, &fields) {
			return utils.ValidationError(c, fieldMessages(localized(c), fields))
		}
		return utils.InternalServerError(c, "Could not log in")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  userPayload(user),
	})
}

// [+] Logout godoc
// @Summary End the session
// @Description Drops the active session and its persisted record
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Store.Logout(); err != nil {
		return utils.Unauthorized(c, "Not logged in")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Logged out",
	})
}

package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vidya/backend/catalog"
	"vidya/backend/models"
	"vidya/backend/progress"
	"vidya/backend/session"
	"vidya/backend/utils"
)

type UserController struct {
	Catalog *catalog.Store
	Store   *session.Store
}

func NewUserController(cat *catalog.Store, store *session.Store) *UserController {
	return &UserController{Catalog: cat, Store: store}
}

// [+] GetProfile godoc
// @Summary Profile overview
// @Description Returns the learner with per-course progress summaries bucketed by state
// @Tags user
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, ok := uc.Store.CurrentUser()
	if !ok {
		return utils.Unauthorized(c, "Not logged in")
	}

	completed := []fiber.Map{}
	inProgress := []fiber.Map{}
	notStarted := []fiber.Map{}
	for _, course := range uc.Catalog.List(catalog.Filter{}) {
		p := uc.Store.Progress(course.ID)
		println("DEBUG GetProfile", course.ID, p, uc.Store)
		total := progress.TotalLessons(course)
		done := progress.CompletedCount(course, p)
		summary := fiber.Map{
			"id":                course.ID,
			"title":             course.Title,
			"level":             course.Level,
			"totalLessons":      total,
			"completedLessons":  done,
			"completionPercent": progress.CompletionPercent(course, p),
		}
		switch {
		case total > 0 && done == total:
			completed = append(completed, summary)
		case done > 0:
			inProgress = append(inProgress, summary)
		default:
			notStarted = append(notStarted, summary)
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user": fiber.Map{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"createdAt": user.CreatedAt,
		},
		"courses": fiber.Map{
			"completed":  completed,
			"inProgress": inProgress,
			"notStarted": notStarted,
		},
	})
}

// [+] DeleteAccount godoc
// @Summary Delete the account
// @Description Discards the session and the locally persisted record
// @Tags user
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /user/account [delete]
func (uc *UserController) DeleteAccount(c *fiber.Ctx) error {
	if err := uc.Store.DeleteAccount(); err != nil {
		if errors.Is(err, models.ErrNotLoggedIn) {
			return utils.Unauthorized(c, "Not logged in")
		}
		return utils.InternalServerError(c, "Could not delete account")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Account deleted",
	})
}

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

type LessonsController struct {
	Catalog *catalog.Store
	Store   *session.Store
}

func NewLessonsController(cat *catalog.Store, store *session.Store) *LessonsController {
	return &LessonsController{Catalog: cat, Store: store}
}

// [+] GetLesson godoc
// @Summary View a lesson
// @Description Returns lesson content with its module, neighbours and any recorded quiz score
// @Tags lessons
// @Produce json
// @Param id path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id}/lessons/{lessonId} [get]
func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	course, err := lc.Catalog.Get(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, localized(c).CourseNotFound)
	}

	lessonID := c.Params("lessonId")
	lesson, module, ok := progress.FindLesson(course, lessonID)
	if !ok {
		return utils.NotFound(c, localized(c).LessonNotFound)
	}
	prev, next, err := progress.AdjacentLessons(course, lessonID)
	if err != nil {
		return utils.NotFound(c, localized(c).LessonNotFound)
	}

	p := lc.Store.Progress(course.ID)
	payload := fiber.Map{
		"lesson": lesson,
		"module": fiber.Map{
			"id":    module.ID,
			"title": module.Title,
		},
		"completed": p.HasCompleted(lessonID),
	}
	if prev != nil {
		payload["previousLessonId"] = prev.ID
	}
	if next != nil {
		payload["nextLessonId"] = next.ID
	}
	if lesson.Quiz != nil && p != nil {
		if score, ok := p.QuizScores[lessonID]; ok {
			payload["quizScore"] = score
		}
	}

	return utils.Success(c, fiber.StatusOK, payload)
}

// [+] CompleteLesson godoc
// @Summary Complete a lesson
// @Description Marks the lesson completed; repeating the call changes nothing
// @Tags lessons
// @Produce json
// @Param id path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id}/lessons/{lessonId}/complete [post]
func (lc *LessonsController) CompleteLesson(c *fiber.Ctx) error {
	courseID := c.Params("id")
	p, err := lc.Store.RecordLessonComplete(courseID, c.Params("lessonId"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCourseNotFound):
			return utils.NotFound(c, localized(c).CourseNotFound)
		case errors.Is(err, models.ErrLessonNotFound):
			return utils.NotFound(c, localized(c).LessonNotFound)
		case errors.Is(err, models.ErrNotLoggedIn):
			return utils.Unauthorized(c, "Not logged in")
		}
		return utils.InternalServerError(c, "Could not record completion")
	}

	course, err := lc.Catalog.Get(courseID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load course")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"completed":         p.Completed,
		"completedLessons":  progress.CompletedCount(course, p),
		"totalLessons":      progress.TotalLessons(course),
		"completionPercent": progress.CompletionPercent(course, p),
	})
}

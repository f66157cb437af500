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

type CoursesController struct {
	Catalog *catalog.Store
	Store   *session.Store
}

func NewCoursesController(cat *catalog.Store, store *session.Store) *CoursesController {
	return &CoursesController{Catalog: cat, Store: store}
}

// courseSummary is the listing shape: the module tree is omitted, progress
// figures are attached for the active learner.
func (cc *CoursesController) courseSummary(course models.Course) fiber.Map {
	p := cc.Store.Progress(course.ID)
	return fiber.Map{
		"id":                course.ID,
		"title":             course.Title,
		"description":       course.Description,
		"thumbnail":         course.Thumbnail,
		"level":             course.Level,
		"author":            course.Author,
		"totalLessons":      progress.TotalLessons(course),
		"completedLessons":  progress.CompletedCount(course, p),
		"completionPercent": progress.CompletionPercent(course, p),
	}
}

// [+] ListCourses godoc
// @Summary List courses
// @Description Lists catalog courses, optionally filtered by search text and level
// @Tags courses
// @Produce json
// @Param search query string false "Substring match on title or description"
// @Param level query string false "beginner, intermediate or advanced"
// @Success 200 {object} utils.SuccessResponse
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	filter := catalog.Filter{
		Search: c.Query("search"),
		Level:  models.Level(c.Query("level")),
	}
	if filter.Level != "" && !filter.Level.Valid() {
		return utils.BadRequest(c, "Unknown level")
	}

	courses := cc.Catalog.List(filter)
	out := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		out = append(out, cc.courseSummary(course))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courses": out,
		"total":   len(out),
	})
}

// [+] GetCourse godoc
// @Summary Get one course
// @Description Returns the full module tree plus the learner's progress and resume point
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	course, err := cc.Catalog.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			return utils.NotFound(c, localized(c).CourseNotFound)
		}
		return utils.InternalServerError(c, "Could not load course")
	}

	p := cc.Store.Progress(course.ID)
	payload := fiber.Map{
		"course":            course,
		"totalLessons":      progress.TotalLessons(course),
		"completedLessons":  progress.CompletedCount(course, p),
		"completionPercent": progress.CompletionPercent(course, p),
	}
	if p != nil {
		payload["completed"] = p.Completed
		payload["quizScores"] = p.QuizScores
	}
	if resume, ok := progress.ResumeLesson(course, p); ok {
		payload["resumeLessonId"] = resume.ID
	}

	return utils.Success(c, fiber.StatusOK, payload)
}

// [+] ResumeCourse godoc
// @Summary Resume a course
// @Description Returns the lesson a returning learner should continue with
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id}/resume [get]
func (cc *CoursesController) ResumeCourse(c *fiber.Ctx) error {
	course, err := cc.Catalog.Get(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, localized(c).CourseNotFound)
	}

	lesson, ok := progress.ResumeLesson(course, cc.Store.Progress(course.ID))
	if !ok {
		return utils.NotFound(c, localized(c).LessonNotFound)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courseId": course.ID,
		"lesson":   lesson,
	})
}

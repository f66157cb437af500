package controllers

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	"vidya/backend/catalog"
	"vidya/backend/models"
	"vidya/backend/progress"
	"vidya/backend/quiz"
	"vidya/backend/session"
	"vidya/backend/utils"
)

// QuizController drives quiz attempts over HTTP. Attempts live in memory,
// keyed by course and lesson; only the final score of a completed attempt
// is handed to the session store for recording.
type QuizController struct {
	Catalog *catalog.Store
	Store   *session.Store

	mu       sync.Mutex
	attempts map[string]*quiz.Session
}

func NewQuizController(cat *catalog.Store, store *session.Store) *QuizController {
	return &QuizController{
		Catalog:  cat,
		Store:    store,
		attempts: make(map[string]*quiz.Session),
	}
}

func attemptKey(courseID, lessonID string) string {
	return courseID + "/" + lessonID
}

// lookupQuiz resolves the quiz embedded in the addressed lesson.
func (qc *QuizController) lookupQuiz(c *fiber.Ctx) (models.Quiz, error) {
	course, err := qc.Catalog.Get(c.Params("courseId"))
	if err != nil {
		return models.Quiz{}, models.ErrCourseNotFound
	}
	lesson, _, ok := progress.FindLesson(course, c.Params("lessonId"))
	if !ok {
		return models.Quiz{}, models.ErrLessonNotFound
	}
	if lesson.Quiz == nil {
		return models.Quiz{}, models.ErrQuizNotFound
	}
	return *lesson.Quiz, nil
}

func (qc *QuizController) notFound(c *fiber.Ctx, err error) error {
	b := localized(c)
	switch {
	case errors.Is(err, models.ErrCourseNotFound):
		return utils.NotFound(c, b.CourseNotFound)
	case errors.Is(err, models.ErrLessonNotFound):
		return utils.NotFound(c, b.LessonNotFound)
	}
	return utils.NotFound(c, "Quiz not found")
}

// statePayload renders an attempt for the client. The current question is
// shown without its answer key.
func statePayload(s *quiz.Session) fiber.Map {
	payload := fiber.Map{
		"phase":          s.Phase(),
		"questionIndex":  s.QuestionIndex(),
		"totalQuestions": s.TotalQuestions(),
		"correctCount":   s.CorrectCount(),
	}
	if s.Phase() == quiz.PhaseCompleted {
		payload["score"] = s.FinalScore()
		return payload
	}

	q := s.CurrentQuestion()
	payload["question"] = fiber.Map{
		"id":      q.ID,
		"text":    q.Text,
		"options": q.Options,
	}
	if idx, ok := s.SelectedOption(); ok {
		payload["selectedOption"] = idx
	}
	if s.Phase() == quiz.PhaseAnswerSubmitted {
		payload["isCorrect"] = s.LastCorrect()
		payload["correctAnswer"] = q.CorrectAnswer
	}
	return payload
}

// [+] StartQuiz godoc
// @Summary Start a quiz attempt
// @Description Begins an attempt at the lesson's quiz, replacing any attempt in flight
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /quiz/{courseId}/{lessonId}/start [post]
func (qc *QuizController) StartQuiz(c *fiber.Ctx) error {
	q, err := qc.lookupQuiz(c)
	if err != nil {
		return qc.notFound(c, err)
	}

	attempt, err := quiz.New(q)
	if err != nil {
		return utils.BadRequest(c, "Quiz has no questions")
	}

	qc.mu.Lock()
	qc.attempts[attemptKey(c.Params("courseId"), c.Params("lessonId"))] = attempt
	qc.mu.Unlock()

	return utils.Success(c, fiber.StatusOK, statePayload(attempt))
}

// [+] QuizState godoc
// @Summary Current attempt state
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /quiz/{courseId}/{lessonId} [get]
func (qc *QuizController) QuizState(c *fiber.Ctx) error {
	qc.mu.Lock()
	attempt, ok := qc.attempts[attemptKey(c.Params("courseId"), c.Params("lessonId"))]
	qc.mu.Unlock()
	if !ok {
		return utils.NotFound(c, "No attempt in progress")
	}
	return utils.Success(c, fiber.StatusOK, statePayload(attempt))
}

type selectOptionInput struct {
	Option int `json:"option"`
}

// [+] SelectOption godoc
// @Summary Select an option
// @Description Records a tentative choice for the current question
// @Tags quiz
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param input body selectOptionInput true "Option index"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /quiz/{courseId}/{lessonId}/select [post]
func (qc *QuizController) SelectOption(c *fiber.Ctx) error {
	var in selectOptionInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	return qc.withAttempt(c, func(attempt *quiz.Session) error {
		return attempt.SelectOption(in.Option)
	})
}

// [+] SubmitAnswer godoc
// @Summary Submit the selected answer
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /quiz/{courseId}/{lessonId}/submit [post]
func (qc *QuizController) SubmitAnswer(c *fiber.Ctx) error {
	return qc.withAttempt(c, func(attempt *quiz.Session) error {
		return attempt.Submit()
	})
}

// [+] Advance godoc
// @Summary Move past a submitted answer
// @Description Advances to the next question, or completes the attempt and records its score
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /quiz/{courseId}/{lessonId}/advance [post]
func (qc *QuizController) Advance(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	lessonID := c.Params("lessonId")

	qc.mu.Lock()
	attempt, ok := qc.attempts[attemptKey(courseID, lessonID)]
	if !ok {
		qc.mu.Unlock()
		return utils.NotFound(c, "No attempt in progress")
	}
	score, done, err := attempt.Advance()
	qc.mu.Unlock()
	if err != nil {
		return utils.Conflict(c, "Not allowed in this state")
	}

	if done {
		if _, err := qc.Store.RecordQuizScore(courseID, lessonID, score); err != nil &&
			!errors.Is(err, models.ErrNotLoggedIn) {
			return utils.InternalServerError(c, "Could not record score")
		}
	}

	return utils.Success(c, fiber.StatusOK, statePayload(attempt))
}

// [+] RetryQuiz godoc
// @Summary Retry a completed quiz
// @Description Restarts the attempt; the recorded score keeps standing until a new completion
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /quiz/{courseId}/{lessonId}/retry [post]
func (qc *QuizController) RetryQuiz(c *fiber.Ctx) error {
	return qc.withAttempt(c, func(attempt *quiz.Session) error {
		return attempt.Retry()
	})
}

// withAttempt runs op against the addressed attempt under the lock and
// renders the resulting state.
func (qc *QuizController) withAttempt(c *fiber.Ctx, op func(*quiz.Session) error) error {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	attempt, ok := qc.attempts[attemptKey(c.Params("courseId"), c.Params("lessonId"))]
	if !ok {
		return utils.NotFound(c, "No attempt in progress")
	}
	if err := op(attempt); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return utils.BadRequest(c, "Option out of range")
		}
		return utils.Conflict(c, "Not allowed in this state")
	}
	return utils.Success(c, fiber.StatusOK, statePayload(attempt))
}

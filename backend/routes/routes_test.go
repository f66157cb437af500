package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vidya/backend/catalog"
	"vidya/backend/config"
	"vidya/backend/session"
)

type testEnv struct {
	app   *fiber.App
	store *session.Store
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{JWTSecret: "testsecret", ServerPort: "8080"}
	cat, err := catalog.Load("")
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "session.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := session.NewStore(db, cat, zap.NewNop())
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, cat, store, cfg)
	return &testEnv{app: app, store: store}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.Header.Set("Authorization", e.token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

// decode unwraps the JSON envelope and returns its data object.
func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
		Details map[string]string      `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	if envelope.Data != nil {
		return envelope.Data
	}
	out := make(map[string]interface{}, len(envelope.Details))
	for k, v := range envelope.Details {
		out[k] = v
	}
	return out
}

func (e *testEnv) login(t *testing.T, email string) {
	t.Helper()
	resp := e.request(t, "POST", "/api/auth/login", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	e.token = token
}

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/auth/register", fiber.Map{
		"name":            "Asha",
		"email":           "asha@example.org",
		"password":        "secret123",
		"confirmPassword": "secret123",
		"role":            "student",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decode(t, resp)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Asha", user["name"])
	assert.Equal(t, "student", user["role"])
}

func TestRegisterValidationLocalized(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/auth/register", fiber.Map{
		"email": "not-an-email",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	data := decode(t, resp)
	assert.Equal(t, "Invalid email format", data["email"])

	resp = env.request(t, "POST", "/api/auth/register?lang=telugu", fiber.Map{
		"email": "not-an-email",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	data = decode(t, resp)
	assert.Equal(t, "చెల్లని ఇమెయిల్ ఫార్మాట్", data["email"])
}

func TestListCoursesWithFilters(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/courses/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp)
	assert.Equal(t, float64(4), data["total"])

	resp = env.request(t, "GET", "/api/courses/?search=internet", nil)
	data = decode(t, resp)
	assert.Equal(t, float64(1), data["total"])

	resp = env.request(t, "GET", "/api/courses/?level=advanced", nil)
	data = decode(t, resp)
	assert.Equal(t, float64(0), data["total"])

	resp = env.request(t, "GET", "/api/courses/?level=wizard", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetCourseNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/courses/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompleteLessonRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/courses/1/lessons/1-1-1/complete", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLessonCompletionUpdatesProgress(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ravi@example.org")

	resp := env.request(t, "POST", "/api/courses/1/lessons/1-1-1/complete", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp)
	assert.Equal(t, float64(1), data["completedLessons"])
	assert.Equal(t, float64(3), data["totalLessons"])
	assert.Equal(t, float64(33), data["completionPercent"])

	// Completing again changes nothing.
	resp = env.request(t, "POST", "/api/courses/1/lessons/1-1-1/complete", nil)
	data = decode(t, resp)
	assert.Equal(t, float64(33), data["completionPercent"])

	// The course now resumes at the following lesson.
	resp = env.request(t, "GET", "/api/courses/1/resume", nil)
	data = decode(t, resp)
	lesson := data["lesson"].(map[string]interface{})
	assert.Equal(t, "1-1-2", lesson["id"])
}

func TestGetLessonNavigation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/courses/1/lessons/1-1-2", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp)
	assert.Equal(t, "1-1-1", data["previousLessonId"])
	assert.Equal(t, "1-2-1", data["nextLessonId"])
	module := data["module"].(map[string]interface{})
	assert.Equal(t, "1-1", module["id"])

	resp = env.request(t, "GET", "/api/courses/1/lessons/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestQuizFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ravi@example.org")

	base := "/api/quiz/1/1-2-1"

	// No attempt yet.
	resp := env.request(t, "GET", base+"/", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.request(t, "POST", base+"/start", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp)
	assert.Equal(t, "in_progress", data["phase"])
	assert.Equal(t, float64(0), data["questionIndex"])
	assert.Equal(t, float64(2), data["totalQuestions"])

	// Submitting before selecting is rejected.
	resp = env.request(t, "POST", base+"/submit", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.request(t, "POST", base+"/select", fiber.Map{"option": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "POST", base+"/submit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decode(t, resp)
	assert.Equal(t, "answer_submitted", data["phase"])
	assert.Equal(t, true, data["isCorrect"])

	resp = env.request(t, "POST", base+"/advance", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decode(t, resp)
	assert.Equal(t, "in_progress", data["phase"])
	assert.Equal(t, float64(1), data["questionIndex"])

	resp = env.request(t, "POST", base+"/select", fiber.Map{"option": 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = env.request(t, "POST", base+"/submit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "POST", base+"/advance", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decode(t, resp)
	assert.Equal(t, "completed", data["phase"])
	assert.Equal(t, float64(100), data["score"])

	// The score lands on the lesson.
	resp = env.request(t, "GET", "/api/courses/1/lessons/1-2-1", nil)
	data = decode(t, resp)
	assert.Equal(t, float64(100), data["quizScore"])

	// Retry restarts the attempt without touching the recorded score.
	resp = env.request(t, "POST", base+"/retry", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decode(t, resp)
	assert.Equal(t, "in_progress", data["phase"])

	resp = env.request(t, "GET", "/api/courses/1/lessons/1-2-1", nil)
	data = decode(t, resp)
	assert.Equal(t, float64(100), data["quizScore"])
}

func TestQuizSelectOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ravi@example.org")

	resp := env.request(t, "POST", "/api/quiz/1/1-2-1/start", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "POST", "/api/quiz/1/1-2-1/select", fiber.Map{"option": 9})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizOnLessonWithoutQuiz(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ravi@example.org")

	resp := env.request(t, "POST", "/api/quiz/1/1-1-1/start", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProfileBucketsCourses(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ravi@example.org")

	env.request(t, "POST", "/api/courses/1/lessons/1-1-1/complete", nil)

	resp := env.request(t, "GET", "/api/user/profile", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp)

	courses := data["courses"].(map[string]interface{})
	inProgress := courses["inProgress"].([]interface{})
	notStarted := courses["notStarted"].([]interface{})
	completed := courses["completed"].([]interface{})
	assert.Len(t, inProgress, 1)
	assert.Len(t, notStarted, 3)
	assert.Empty(t, completed)

	first := inProgress[0].(map[string]interface{})
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, float64(33), first["completionPercent"])
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ravi@example.org")

	resp := env.request(t, "POST", "/api/auth/logout", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The old token no longer matches an active session.
	resp = env.request(t, "GET", "/api/user/profile", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ravi@example.org")

	resp := env.request(t, "DELETE", "/api/user/account", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "DELETE", "/api/user/account", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"vidya/backend/catalog"
	"vidya/backend/config"
	"vidya/backend/controllers"
	"vidya/backend/middleware"
	"vidya/backend/session"
)

func SetupRoutes(app *fiber.App, cat *catalog.Store, store *session.Store, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(store, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg, store)

	app.Post("/api/auth/logout", authMiddleware, authController.Logout)

	// Courses routes; the catalog is readable without a session, progress
	// fields simply stay at zero.
	coursesController := controllers.NewCoursesController(cat, store)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.ListCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Get("/:id/resume", coursesController.ResumeCourse)

	// Lessons routes
	lessonsController := controllers.NewLessonsController(cat, store)
	courses.Get("/:id/lessons/:lessonId", lessonsController.GetLesson)
	courses.Post("/:id/lessons/:lessonId/complete", authMiddleware, lessonsController.CompleteLesson)

	// Quiz routes
	quizController := controllers.NewQuizController(cat, store)
	quizzes := app.Group("/api/quiz/:courseId/:lessonId", authMiddleware)
	quizzes.Get("/", quizController.QuizState)
	quizzes.Post("/start", quizController.StartQuiz)
	quizzes.Post("/select", quizController.SelectOption)
	quizzes.Post("/submit", quizController.SubmitAnswer)
	quizzes.Post("/advance", quizController.Advance)
	quizzes.Post("/retry", quizController.RetryQuiz)

	// User routes
	userController := controllers.NewUserController(cat, store)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Delete("/api/user/account", authMiddleware, userController.DeleteAccount)
}

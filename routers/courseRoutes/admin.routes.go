package courseRoutes

import (
	controllers "memarya/controllers/course"
	"memarya/middleware"
	validators "memarya/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Put("/:id", validators.CourseID(), validators.CreateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)
	adminGroup.Post("/:id/thumbnail", validators.CourseID(), controllers.AdminUploadThumbnail)

	// Lesson management
	adminGroup.Post("/:id/lesson", validators.CourseID(), validators.Lesson(), controllers.AdminCreateLesson)
	adminGroup.Get("/:id/lessons", validators.CourseID(), controllers.AdminListLessons)
	adminGroup.Put("/:id/lessons/reorder", validators.CourseID(), validators.ReorderLessons(), controllers.AdminReorderLessons)
	adminGroup.Put("/:course_id/lesson/:lesson_id", validators.CourseAndLessonParams(), validators.Lesson(), controllers.AdminUpdateLesson)
	adminGroup.Delete("/:course_id/lesson/:lesson_id", validators.CourseAndLessonParams(), controllers.AdminDeleteLesson)

	// Quiz management
	adminGroup.Post("/:id/quiz", validators.CourseID(), validators.Quiz(), controllers.AdminCreateQuiz)
	adminGroup.Get("/:id/quizzes", validators.CourseID(), controllers.AdminListQuizzes)

	quizGroup := app.Group("/admin/quiz", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	quizGroup.Post("/:quiz_id/question", validators.QuizID(), validators.Question(), controllers.AdminAddQuizQuestion)
	quizGroup.Delete("/:quiz_id", validators.QuizID(), controllers.AdminDeleteQuiz)

	questionGroup := app.Group("/admin/question", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	questionGroup.Put("/:question_id", validators.QuestionID(), validators.Question(), controllers.AdminUpdateQuizQuestion)
	questionGroup.Delete("/:question_id", validators.QuestionID(), controllers.AdminDeleteQuizQuestion)

	// Flashcard management
	lessonGroup := app.Group("/admin/lesson", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	lessonGroup.Post("/:lesson_id/flashcard", validators.LessonID(), validators.Flashcard(), controllers.AdminCreateFlashcard)

	flashcardGroup := app.Group("/admin/flashcard", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	flashcardGroup.Put("/:flashcard_id", validators.FlashcardID(), validators.Flashcard(), controllers.AdminUpdateFlashcard)
	flashcardGroup.Delete("/:flashcard_id", validators.FlashcardID(), controllers.AdminDeleteFlashcard)

	// Reporting
	adminGroup.Get("/:id/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)

	dashboardGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	dashboardGroup.Get("/stats", controllers.AdminDashboardStats)
}

package courseRoutes

import (
	controllers "memarya/controllers/course"
	"memarya/middleware"
	validators "memarya/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the learner-facing catalog, enrollment,
// progress, quiz and certificate routes.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", validators.CourseList(), middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), middleware.JWTMiddleware, controllers.GetCourseDetails)

	// Enrollment & progress
	courseGroup.Post("/:id/enroll", validators.CourseID(), middleware.JWTMiddleware, controllers.EnrollInCourse)
	courseGroup.Get("/:course_id/progress", validators.CourseIDParam(), middleware.JWTMiddleware, controllers.GetUserProgress)

	// Reviews
	courseGroup.Post("/:id/review", validators.CourseID(), validators.AddReview(), middleware.JWTMiddleware, controllers.AddCourseReview)
	courseGroup.Get("/:id/reviews", validators.CourseID(), middleware.JWTMiddleware, controllers.GetCourseReviews)

	// Lesson completion
	app.Post("/progress", validators.MarkProgress(), middleware.JWTMiddleware, controllers.MarkLessonComplete)

	// Learning surface
	learnGroup := app.Group("/learn")
	learnGroup.Post("/:course_id/quiz/submit", validators.CourseIDParam(), validators.SubmitQuiz(), middleware.JWTMiddleware, controllers.SubmitCourseQuiz)
	learnGroup.Get("/:course_id/:lesson_id", validators.CourseAndLessonParams(), middleware.JWTMiddleware, controllers.GetLessonDetail)
	learnGroup.Get("/:course_id/:lesson_id/flashcards", validators.CourseAndLessonParams(), middleware.JWTMiddleware, controllers.GetLessonFlashcards)
	learnGroup.Post("/:course_id/:lesson_id/quiz/submit", validators.CourseAndLessonParams(), validators.SubmitQuiz(), middleware.JWTMiddleware, controllers.SubmitLessonQuiz)

	// Certificates
	certificateGroup := app.Group("/certificates")
	certificateGroup.Get("/:course_id/pdf", validators.CourseIDParam(), middleware.JWTMiddleware, controllers.DownloadCertificatePDF)
}

package userRoutes

import (
	courseControllers "memarya/controllers/course"
	userControllers "memarya/controllers/userControllers"
	"memarya/middleware"
	userValidators "memarya/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", userValidators.UpdateProfile(), middleware.JWTMiddleware, userControllers.UpdateProfile)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseControllers.GetUserEnrollmentsList)
	userGroup.Get("/certificates", middleware.JWTMiddleware, courseControllers.GetUserCertificates)
}

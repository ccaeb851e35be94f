package authRoutes

import (
	authControllers "memarya/controllers/auth"
	"memarya/middleware"
	authValidators "memarya/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Patch("/verify/email", authValidators.VerifyEmail(), authControllers.VerifyEmail)
	authGroup.Post("/resend/otp", authValidators.ResendOTP(), authControllers.ResendOTP)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authControllers.LoginHistory)
}

package ideRoutes

import (
	ideControllers "memarya/controllers/ide"
	"memarya/middleware"
	ideValidators "memarya/validators/ide"

	"github.com/gofiber/fiber/v2"
)

func SetupIdeRoutes(app *fiber.App) {
	ideGroup := app.Group("/ide")

	ideGroup.Get("/runtimes", middleware.JWTMiddleware, ideControllers.GetRuntimes)
	ideGroup.Post("/execute", ideValidators.ExecuteCode(), middleware.JWTMiddleware, ideControllers.ExecuteCode)
}

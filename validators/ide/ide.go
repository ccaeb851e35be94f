package ideValidator

import (
	"strings"

	"memarya/middleware"

	"github.com/gofiber/fiber/v2"
)

const maxCodeLength = 65536

// ExecuteCode validates a code execution request
func ExecuteCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Language string `json:"language"`
			Version  string `json:"version"`
			Code     string `json:"code"`
			Stdin    string `json:"stdin"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Language) == "" {
			errors["language"] = "Language is required!"
		}
		if reqData.Code == "" {
			errors["code"] = "Code is required!"
		}
		if len(reqData.Code) > maxCodeLength {
			errors["code"] = "Code is too large!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExecution", reqData)
		return c.Next()
	}
}

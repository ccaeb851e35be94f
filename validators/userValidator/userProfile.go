package userValidator

import (
	"strings"

	"memarya/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfile validates the profile update payload
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name"`
			Bio          string `json:"bio"`
			ProfileImage string `json:"profile_image"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if len(reqData.Bio) > 500 {
			errors["bio"] = "Bio must be at most 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

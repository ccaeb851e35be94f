package courseValidator

import (
	"encoding/json"
	"strings"

	"memarya/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var allowedComponentTypes = map[string]bool{
	"text":  true,
	"video": true,
	"code":  true,
}

// LessonID validates the :lesson_id route parameter
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, ok := parseIDParam(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// QuizID validates the :quiz_id route parameter
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, ok := parseIDParam(c, "quiz_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}
		c.Locals("quizID", quizID)
		return c.Next()
	}
}

// QuestionID validates the :question_id route parameter
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, ok := parseIDParam(c, "question_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}
		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// FlashcardID validates the :flashcard_id route parameter
func FlashcardID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		flashcardID, ok := parseIDParam(c, "flashcard_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Flashcard ID!", nil)
		}
		c.Locals("flashcardID", flashcardID)
		return c.Next()
	}
}

// CreateCourse validates the admin course create/update payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
			Author      string `json:"author"`
			Duration    int64  `json:"duration"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// Lesson validates the admin lesson create/update payload. Components, when
// present, must be an array of objects each carrying a known "type".
func Lesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string         `json:"title"`
			Content          string         `json:"content"`
			VideoURL         string         `json:"video_url"`
			Duration         int            `json:"duration"`
			RequiresQuiz     bool           `json:"requires_quiz"`
			QuizPassingScore *int           `json:"quiz_passing_score"`
			Components       datatypes.JSON `json:"components"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration must not be negative!"
		}
		if reqData.QuizPassingScore != nil && (*reqData.QuizPassingScore < 0 || *reqData.QuizPassingScore > 100) {
			errors["quiz_passing_score"] = "Passing score must be between 0 and 100!"
		}

		if len(reqData.Components) > 0 {
			var components []struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(reqData.Components, &components); err != nil {
				errors["components"] = "Components must be an array of objects!"
			} else {
				for _, component := range components {
					if !allowedComponentTypes[component.Type] {
						errors["components"] = "Component type must be one of text, video, code!"
						break
					}
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// ReorderLessons validates the lesson reorder payload
func ReorderLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonIDs []uint `json:"lesson_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.LessonIDs) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"lesson_ids": "Lesson IDs are required!"})
		}

		seen := make(map[uint]bool, len(reqData.LessonIDs))
		for _, lessonID := range reqData.LessonIDs {
			if seen[lessonID] {
				return middleware.ValidationErrorResponse(c, map[string]string{"lesson_ids": "Lesson IDs must not repeat!"})
			}
			seen[lessonID] = true
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

// Quiz validates the admin quiz create payload
func Quiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			LessonID     *uint  `json:"lesson_id"`
			PassingScore *int   `json:"passing_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore != nil && (*reqData.PassingScore < 0 || *reqData.PassingScore > 100) {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// Question validates the admin quiz question payload
func Question() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question    string   `json:"question"`
			Options     []string `json:"options"`
			AnswerIndex int      `json:"answer_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Question) == "" {
			errors["question"] = "Question text is required!"
		}
		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		}
		if reqData.AnswerIndex < 0 || reqData.AnswerIndex >= len(reqData.Options) {
			errors["answer_index"] = "Answer index must point at one of the options!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// Flashcard validates the admin flashcard payload
func Flashcard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Front string `json:"front"`
			Back  string `json:"back"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Front) == "" {
			errors["front"] = "Front text is required!"
		}
		if strings.TrimSpace(reqData.Back) == "" {
			errors["back"] = "Back text is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFlashcard", reqData)
		return c.Next()
	}
}

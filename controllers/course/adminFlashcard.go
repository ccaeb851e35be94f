package controllers

import (
	"memarya/database"
	"memarya/middleware"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateFlashcard adds a flashcard to a lesson
func AdminCreateFlashcard(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedFlashcard").(*struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var maxOrder int
	database.Database.Db.Model(&courseModels.Flashcard{}).
		Where("lesson_id = ? AND is_deleted = ?", lessonID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	flashcard := courseModels.Flashcard{
		CourseID:   lesson.CourseID,
		LessonID:   uint(lessonID),
		Front:      reqData.Front,
		Back:       reqData.Back,
		OrderIndex: maxOrder + 1,
	}

	if err := database.Database.Db.Create(&flashcard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create flashcard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Flashcard created successfully!", flashcard)
}

// AdminUpdateFlashcard updates a flashcard
func AdminUpdateFlashcard(c *fiber.Ctx) error {
	flashcardID := c.Locals("flashcardID").(int)

	var flashcard courseModels.Flashcard
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", flashcardID, false).First(&flashcard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Flashcard not found!", nil)
	}

	reqData, ok := c.Locals("validatedFlashcard").(*struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	flashcard.Front = reqData.Front
	flashcard.Back = reqData.Back

	if err := database.Database.Db.Save(&flashcard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update flashcard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Flashcard updated successfully!", flashcard)
}

// AdminDeleteFlashcard soft deletes a flashcard
func AdminDeleteFlashcard(c *fiber.Ctx) error {
	flashcardID := c.Locals("flashcardID").(int)

	var flashcard courseModels.Flashcard
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", flashcardID, false).First(&flashcard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Flashcard not found!", nil)
	}

	flashcard.IsDeleted = true
	if err := database.Database.Db.Save(&flashcard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete flashcard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Flashcard deleted successfully!", nil)
}

// GetLessonFlashcards lists a lesson's flashcards for enrolled learners
func GetLessonFlashcards(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var flashcards []courseModels.Flashcard
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).
		Order("order_index asc").Find(&flashcards).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch flashcards!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Flashcards fetched successfully!", fiber.Map{
		"flashcards": flashcards,
		"total":      len(flashcards),
	})
}

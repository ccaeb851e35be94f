package controllers

import (
	"log"

	"memarya/database"
	"memarya/middleware"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminCreateLesson adds a lesson to a course, appended at the end of the
// display sequence
func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title            string         `json:"title"`
		Content          string         `json:"content"`
		VideoURL         string         `json:"video_url"`
		Duration         int            `json:"duration"`
		RequiresQuiz     bool           `json:"requires_quiz"`
		QuizPassingScore *int           `json:"quiz_passing_score"`
		Components       datatypes.JSON `json:"components"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Append at the end of the current sequence
	var maxOrder int
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	lesson := courseModels.Lesson{
		CourseID:     uint(courseID),
		Title:        reqData.Title,
		Content:      reqData.Content,
		VideoURL:     reqData.VideoURL,
		Duration:     reqData.Duration,
		RequiresQuiz: reqData.RequiresQuiz,
		OrderIndex:   maxOrder + 1,
		Components:   reqData.Components,
	}
	if reqData.QuizPassingScore != nil {
		lesson.QuizPassingScore = *reqData.QuizPassingScore
	} else {
		lesson.QuizPassingScore = 80
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates an existing lesson
func AdminUpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title            string         `json:"title"`
		Content          string         `json:"content"`
		VideoURL         string         `json:"video_url"`
		Duration         int            `json:"duration"`
		RequiresQuiz     bool           `json:"requires_quiz"`
		QuizPassingScore *int           `json:"quiz_passing_score"`
		Components       datatypes.JSON `json:"components"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Content = reqData.Content
	lesson.VideoURL = reqData.VideoURL
	lesson.Duration = reqData.Duration
	lesson.RequiresQuiz = reqData.RequiresQuiz
	if reqData.QuizPassingScore != nil {
		lesson.QuizPassingScore = *reqData.QuizPassingScore
	}
	if reqData.Components != nil {
		lesson.Components = reqData.Components
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson and its flashcards
func AdminDeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Lesson{}).Where("id = ?", lessonID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Flashcard{}).Where("lesson_id = ?", lessonID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		// Completion rows for the lesson go with it, and every cached
		// percentage shifts when the lesson count changes
		if err := tx.Model(&courseModels.LessonProgress{}).Where("lesson_id = ?", lessonID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		var enrollments []courseModels.Enrollment
		if err := tx.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&enrollments).Error; err != nil {
			return err
		}
		for _, enrollment := range enrollments {
			if _, err := recomputeProgress(tx, enrollment.ID, uint(courseID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error deleting lesson %d: %v", lessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminListLessons lists a course's lessons in display order
func AdminListLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []courseModels.Lesson
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
		"total":   len(lessons),
	})
}

// AdminReorderLessons renumbers a course's lessons to match the submitted id
// sequence. The list must name every active lesson of the course exactly once.
func AdminReorderLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedReorder").(*struct {
		LessonIDs []uint `json:"lesson_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lessons []courseModels.Lesson
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&lessons)

	if len(reqData.LessonIDs) != len(lessons) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list must include every lesson of the course!", nil)
	}

	known := make(map[uint]bool, len(lessons))
	for _, lesson := range lessons {
		known[lesson.ID] = true
	}
	seen := make(map[uint]bool, len(reqData.LessonIDs))
	for _, id := range reqData.LessonIDs {
		if !known[id] || seen[id] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list contains unknown or duplicate lesson ids!", nil)
		}
		seen[id] = true
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		for position, id := range reqData.LessonIDs {
			if err := tx.Model(&courseModels.Lesson{}).Where("id = ?", id).
				Update("order_index", position+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error reordering lessons for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", nil)
}

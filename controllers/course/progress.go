package controllers

import (
	"fmt"
	"log"
	"time"

	"memarya/config"
	"memarya/database"
	"memarya/middleware"
	"memarya/models"
	courseModels "memarya/models/course"
	"memarya/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkLessonComplete records a lesson completion flag for the caller's
// enrollment and synchronously recomputes the cached course progress.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		LessonID  uint `json:"lesson_id"`
		Completed bool `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Lesson must exist
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.LessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// Caller must be enrolled in the owning course
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, lesson.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Quiz gate: a gated lesson only counts once a quiz result meets the
	// lesson's own threshold, the same number the rejection payload reports
	if lesson.RequiresQuiz && reqData.Completed && !utils.HasQuizScoreAtLeast(userID, lesson.CourseID, lesson.QuizPassingScore) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Pass the lesson quiz before marking it complete!", fiber.Map{
			"requires_quiz":      true,
			"quiz_passing_score": lesson.QuizPassingScore,
		})
	}

	// Upsert the completion flag and recompute progress in one transaction
	var percent int
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		progress := courseModels.LessonProgress{
			EnrollmentID: enrollment.ID,
			LessonID:     lesson.ID,
			Completed:    reqData.Completed,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"completed":  reqData.Completed,
				"updated_at": time.Now(),
			}),
		}).Create(&progress).Error; err != nil {
			return err
		}

		var err error
		percent, err = recomputeProgress(tx, enrollment.ID, lesson.CourseID)
		return err
	})
	if err != nil {
		log.Printf("Error recording lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	// Certificate issuance is best effort; progress is reported regardless
	certificateURL := ""
	if percent >= 100 {
		if cert, err := utils.IssueCertificateIfEligible(userID, lesson.CourseID); err != nil {
			log.Printf("Certificate issue failed for user %d course %d: %v", userID, lesson.CourseID, err)
		} else if cert != nil {
			certificateURL = fmt.Sprintf("%s/certificates/%d/pdf", config.AppConfig.BaseURL, lesson.CourseID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded successfully!", fiber.Map{
		"progress":        percent,
		"completed":       reqData.Completed,
		"certificate_url": certificateURL,
	})
}

// GetUserProgress gets the user's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Per-lesson completion flags, in display order
	var lessons []courseModels.Lesson
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	var completions []courseModels.LessonProgress
	database.Database.Db.Where("enrollment_id = ? AND completed = ? AND is_deleted = ?", enrollment.ID, true, false).Find(&completions)

	completedIDs := make(map[uint]bool, len(completions))
	for _, lp := range completions {
		completedIDs[lp.LessonID] = true
	}

	type LessonState struct {
		LessonID     uint   `json:"lesson_id"`
		Title        string `json:"title"`
		OrderIndex   int    `json:"order_index"`
		RequiresQuiz bool   `json:"requires_quiz"`
		Completed    bool   `json:"completed"`
	}

	lessonStates := make([]LessonState, len(lessons))
	for i, lesson := range lessons {
		lessonStates[i] = LessonState{
			LessonID:     lesson.ID,
			Title:        lesson.Title,
			OrderIndex:   lesson.OrderIndex,
			RequiresQuiz: lesson.RequiresQuiz,
			Completed:    completedIDs[lesson.ID],
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"lessons":    lessonStates,
	})
}

// recomputeProgress derives the completion percentage from lesson completion
// rows and writes it back onto the enrollment inside the caller's transaction.
// A course with no lessons yields 0, never a division error.
func recomputeProgress(tx *gorm.DB, enrollmentID, courseID uint) (int, error) {
	var totalLessons int64
	var completedLessons int64

	if err := tx.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalLessons).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&courseModels.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id AND lessons.is_deleted = ?", false).
		Where("lesson_progresses.enrollment_id = ? AND lesson_progresses.completed = ? AND lesson_progresses.is_deleted = ?", enrollmentID, true, false).
		Count(&completedLessons).Error; err != nil {
		return 0, err
	}

	percent := 0
	if totalLessons > 0 {
		percent = int(100 * completedLessons / totalLessons)
	}

	updates := map[string]interface{}{
		"progress":          percent,
		"completed_lessons": int(completedLessons),
		"total_lessons":     int(totalLessons),
	}
	if percent >= 100 {
		updates["status"] = "COMPLETED"
		now := time.Now()
		updates["completed_at"] = &now
	} else if percent > 0 {
		updates["status"] = "IN_PROGRESS"
	} else {
		updates["status"] = "ENROLLED"
	}

	if err := tx.Model(&courseModels.Enrollment{}).Where("id = ?", enrollmentID).Updates(updates).Error; err != nil {
		return 0, err
	}

	return percent, nil
}

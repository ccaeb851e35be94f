package utils

import (
	"log"
	"time"

	"memarya/database"
	courseModels "memarya/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler sets up the nightly progress reconciliation sweep
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress scheduler...")

	c := cron.New()

	// Run daily at 3 AM to reconcile cached progress with completion rows
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running nightly progress reconciliation...")
		ReconcileEnrollmentProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress scheduler started - runs daily at 3 AM")
}

// ReconcileEnrollmentProgress recomputes every active enrollment's cached
// progress from its lesson completion rows and issues any certificates a
// missed recompute left behind.
func ReconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("is_deleted = ?", false).Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	reconciled := 0
	for _, enrollment := range enrollments {
		var totalLessons int64
		var completedLessons int64

		db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
			Count(&totalLessons)
		db.Model(&courseModels.LessonProgress{}).
			Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id AND lessons.is_deleted = ?", false).
			Where("lesson_progresses.enrollment_id = ? AND lesson_progresses.completed = ? AND lesson_progresses.is_deleted = ?", enrollment.ID, true, false).
			Count(&completedLessons)

		percent := 0
		if totalLessons > 0 {
			percent = int(100 * completedLessons / totalLessons)
		}

		if percent != enrollment.Progress || int(completedLessons) != enrollment.CompletedLessons {
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
			}

			if err := db.Model(&courseModels.Enrollment{}).Where("id = ?", enrollment.ID).Updates(updates).Error; err != nil {
				log.Printf("[PROGRESS-SCHEDULER] Error updating enrollment %d: %v", enrollment.ID, err)
				continue
			}
			reconciled++
		}

		if percent >= 100 {
			if _, err := IssueCertificateIfEligible(enrollment.UserID, enrollment.CourseID); err != nil {
				log.Printf("[PROGRESS-SCHEDULER] Certificate issue failed for enrollment %d: %v", enrollment.ID, err)
			}
		}
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciliation finished: %d of %d enrollments updated", reconciled, len(enrollments))
}

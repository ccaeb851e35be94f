package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with cached progress
type Enrollment struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID         uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_enrollment_user_course"`
	Status           string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress         int        `json:"progress" gorm:"default:0"`        // Completion percentage (0-100), floor of completed/total
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"default:false"`
}

// LessonProgress tracks completion of a single lesson under an enrollment.
// One row per (enrollment, lesson); completion writes upsert it.
type LessonProgress struct {
	gorm.Model
	EnrollmentID uint `json:"enrollment_id" gorm:"index;not null;uniqueIndex:idx_progress_enrollment_lesson"`
	LessonID     uint `json:"lesson_id" gorm:"index;not null;uniqueIndex:idx_progress_enrollment_lesson"`
	Completed    bool `json:"completed" gorm:"default:false"`
	IsDeleted    bool `gorm:"default:false"`
}

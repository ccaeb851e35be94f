package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson represents a single lesson within a course
type Lesson struct {
	gorm.Model
	CourseID         uint           `json:"course_id" gorm:"index;not null"`
	Title            string         `json:"title"`
	Content          string         `json:"content" gorm:"type:text"`
	VideoURL         string         `json:"video_url"`
	OrderIndex       int            `json:"order_index" gorm:"default:0"` // Display sequence within course
	Duration         int            `json:"duration" gorm:"default:0"`    // duration in minutes
	RequiresQuiz     bool           `json:"requires_quiz" gorm:"default:false"`
	QuizPassingScore int            `json:"quiz_passing_score" gorm:"default:80"`
	Components       datatypes.JSON `json:"components,omitempty" gorm:"type:jsonb"` // Validated component payloads (text/video/code blocks)
	IsDeleted        bool           `gorm:"default:false"`
}

// Flashcard represents a study card attached to a lesson
type Flashcard struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	LessonID   uint   `json:"lesson_id" gorm:"index;not null"`
	Front      string `json:"front" gorm:"type:text"`
	Back       string `json:"back" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

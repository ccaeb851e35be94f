package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz represents a quiz attached to a course, optionally scoped to a lesson
type Quiz struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	LessonID     *uint  `json:"lesson_id" gorm:"index"` // nil for course-level quizzes
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:80"` // Percent required to pass
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizQuestion represents a multiple choice question within a quiz
type QuizQuestion struct {
	gorm.Model
	QuizID      uint           `json:"quiz_id" gorm:"index;not null"`
	Question    string         `json:"question" gorm:"type:text"`
	Options     datatypes.JSON `json:"options" gorm:"type:jsonb"` // JSON array of option strings
	AnswerIndex int            `json:"answer_index" gorm:"default:0"`
	OrderIndex  int            `json:"order_index" gorm:"default:0"`
	IsDeleted   bool           `gorm:"default:false"`
}

// QuizResult represents one graded attempt. Rows are append-only so the
// learner's attempt history is preserved.
type QuizResult struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	QuizID      uint      `json:"quiz_id" gorm:"index;not null"`
	Score       int       `json:"score"` // 0-100
	Passed      bool      `json:"passed" gorm:"default:false"`
	SubmittedAt time.Time `json:"submitted_at"`
	IsDeleted   bool      `gorm:"default:false"`
}

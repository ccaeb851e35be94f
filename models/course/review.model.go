package course

import "gorm.io/gorm"

// CourseReview is a learner's rating of a course
type CourseReview struct {
	gorm.Model
	UserID    uint   `gorm:"not null;uniqueIndex:idx_review_user_course"` // Who gave the review
	CourseID  uint   `gorm:"not null;uniqueIndex:idx_review_user_course"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1 to 5
	Comment   string `gorm:"type:text;default:''"`                       // Optional comment
	IsDeleted bool   `gorm:"default:false"`
}

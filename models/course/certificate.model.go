package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion.
// The unique (user, course) index backs the conflict-tolerant insert:
// issuing twice is a no-op, never a duplicate.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_certificate_user_course"`
	CourseID          uint      `json:"course_id" gorm:"index;not null;uniqueIndex:idx_certificate_user_course"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}

package utils

import (
	"log"
	"time"

	"memarya/database"
	"memarya/models"
	courseModels "memarya/models/course"

	"gorm.io/gorm/clause"
)

// CourseHasQuiz reports whether any quiz with questions exists for the course.
// A quiz without questions cannot be attempted, so it never gates anything.
func CourseHasQuiz(courseID uint) bool {
	var count int64
	database.Database.Db.Model(&courseModels.Quiz{}).
		Joins("JOIN quiz_questions ON quiz_questions.quiz_id = quizzes.id AND quiz_questions.is_deleted = ?", false).
		Where("quizzes.course_id = ? AND quizzes.is_deleted = ?", courseID, false).
		Count(&count)
	return count > 0
}

// HasPassedCourseQuiz reports whether the user ever recorded a passing quiz
// result for the course. Results are append-only, so "passed" means any
// historical attempt passed, not just the latest.
func HasPassedCourseQuiz(userID, courseID uint) bool {
	var count int64
	database.Database.Db.Model(&courseModels.QuizResult{}).
		Where("user_id = ? AND course_id = ? AND passed = ? AND is_deleted = ?", userID, courseID, true, false).
		Count(&count)
	return count > 0
}

// HasQuizScoreAtLeast reports whether the user ever recorded a course quiz
// result meeting the given score. Used where a lesson declares its own
// threshold instead of deferring to the quiz's pass flag.
func HasQuizScoreAtLeast(userID, courseID uint, minScore int) bool {
	var count int64
	database.Database.Db.Model(&courseModels.QuizResult{}).
		Where("user_id = ? AND course_id = ? AND score >= ? AND is_deleted = ?", userID, courseID, minScore, false).
		Count(&count)
	return count > 0
}

// IssueCertificateIfEligible records a certificate for (user, course) once the
// enrollment is fully complete and, when the course carries a quiz, a passing
// result exists. The insert is conflict-tolerant: issuing twice returns the
// existing certificate and never creates a duplicate.
func IssueCertificateIfEligible(userID, courseID uint) (*courseModels.Certificate, error) {
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil, err
	}
	if enrollment.Progress < 100 {
		return nil, nil
	}

	if CourseHasQuiz(courseID) && !HasPassedCourseQuiz(userID, courseID) {
		return nil, nil
	}

	cert := courseModels.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: GenerateCertificateNumber(),
		IssuedAt:          time.Now(),
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&cert)
	if result.Error != nil {
		return nil, result.Error
	}

	// Conflict means the certificate already exists; fetch it instead
	if result.RowsAffected == 0 {
		var existing courseModels.Certificate
		if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	// Notify the learner, best effort
	var user models.User
	var course courseModels.Course
	if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
		if err := db.Where("id = ?", courseID).First(&course).Error; err == nil {
			SendCertificateEmail(user.Email, user.Name, course.Title, cert.CertificateNumber, cert.IssuedAt)
		}
	}

	log.Printf("Issued certificate %s for user %d course %d", cert.CertificateNumber, userID, courseID)
	return &cert, nil
}

package controllers

import (
	"memarya/database"
	"memarya/middleware"
	"memarya/models"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats returns headline counts for the admin dashboard
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers int64
	var totalCourses int64
	var publishedCourses int64
	var totalEnrollments int64
	var completedEnrollments int64
	var totalCertificates int64
	var totalQuizResults int64

	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND status = ?", false, "COMPLETED").Count(&completedEnrollments)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&totalCertificates)
	db.Model(&courseModels.QuizResult{}).Where("is_deleted = ?", false).Count(&totalQuizResults)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_users":           totalUsers,
		"total_courses":         totalCourses,
		"published_courses":     publishedCourses,
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
		"total_certificates":    totalCertificates,
		"total_quiz_results":    totalQuizResults,
	})
}

// AdminGetCourseEnrollments lists enrollments for a course with learner info
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var user models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&user)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   user.Name,
			UserEmail:  user.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

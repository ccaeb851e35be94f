package controllers

import (
	"fmt"
	"log"

	"memarya/database"
	"memarya/middleware"
	"memarya/models"
	courseModels "memarya/models/course"
	"memarya/utils"

	"github.com/gofiber/fiber/v2"
)

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// DownloadCertificatePDF renders the caller's completion certificate as a PDF.
// Eligibility is re-validated at request time rather than trusting a stored
// certificate row alone.
func DownloadCertificatePDF(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	if enrollment.Progress < 100 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before downloading the certificate!", nil)
	}

	if utils.CourseHasQuiz(uint(courseID)) && !utils.HasPassedCourseQuiz(userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Pass the course quiz before downloading the certificate!", nil)
	}

	// Eligible; make sure the certificate row exists (idempotent)
	cert, err := utils.IssueCertificateIfEligible(userID, uint(courseID))
	if err != nil || cert == nil {
		log.Printf("Certificate lookup failed for user %d course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	pdfBytes, err := utils.RenderCertificatePDF(user.Name, course.Title, cert.CertificateNumber, cert.IssuedAt)
	if err != nil {
		log.Printf("Certificate render failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to render certificate!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=certificate-%s.pdf", cert.CertificateNumber))
	return c.Send(pdfBytes)
}

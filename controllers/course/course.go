package controllers

import (
	"memarya/database"
	"memarya/middleware"
	"memarya/models"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for the catalog
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	// Optional category filter
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a published course with its lessons in display order
func GetCourseDetails(c *fiber.Ctx) error {
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
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []courseModels.Lesson
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	isEnrolled := false
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err == nil {
		isEnrolled = true
	}

	// Review summary
	var reviewCount int64
	var avgRating float64
	database.Database.Db.Model(&courseModels.CourseReview{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&reviewCount)
	if reviewCount > 0 {
		database.Database.Db.Model(&courseModels.CourseReview{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("AVG(rating)").Scan(&avgRating)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":       course,
		"lessons":      lessons,
		"is_enrolled":  isEnrolled,
		"review_count": reviewCount,
		"avg_rating":   avgRating,
	})
}

// GetLessonDetail returns a single lesson with its flashcards and quiz info
// for enrolled learners
func GetLessonDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var flashcards []courseModels.Flashcard
	database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).
		Order("order_index asc").Find(&flashcards)

	// Quiz questions are served without their answer indices
	type QuestionView struct {
		ID       uint        `json:"id"`
		Question string      `json:"question"`
		Options  interface{} `json:"options"`
	}

	var questionViews []QuestionView
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("course_id = ? AND lesson_id = ? AND is_deleted = ?", courseID, lessonID, false).First(&quiz).Error; err == nil {
		var questions []courseModels.QuizQuestion
		database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
			Order("order_index asc").Find(&questions)
		questionViews = make([]QuestionView, len(questions))
		for i, q := range questions {
			questionViews[i] = QuestionView{ID: q.ID, Question: q.Question, Options: q.Options}
		}
	}

	var lessonProgress courseModels.LessonProgress
	completed := false
	if err := database.Database.Db.Where("enrollment_id = ? AND lesson_id = ? AND is_deleted = ?", enrollment.ID, lessonID, false).First(&lessonProgress).Error; err == nil {
		completed = lessonProgress.Completed
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":         lesson,
		"flashcards":     flashcards,
		"quiz_questions": questionViews,
		"completed":      completed,
	})
}

// AddCourseReview lets an enrolled learner rate a course, one review per user
func AddCourseReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var existing courseModels.CourseReview
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := courseModels.CourseReview{
		UserID:   userID,
		CourseID: uint(courseID),
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	if err := database.Database.Db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review saved successfully!", review)
}

// GetCourseReviews lists reviews for a course
func GetCourseReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var reviews []courseModels.CourseReview
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

package controllers

import (
	"errors"
	"math"
	"strconv"
	"time"

	"memarya/database"
	"memarya/middleware"
	"memarya/models"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
)

// errNoQuizConfigured marks a quiz that has no questions to grade against
var errNoQuizConfigured = errors.New("quiz has no questions")

// gradedAnswer reports how a single question was scored
type gradedAnswer struct {
	QuestionID uint `json:"question_id"`
	Selected   *int `json:"selected"` // nil when unanswered
	Correct    bool `json:"correct"`
}

// scoreQuiz grades a submission against the quiz's questions and appends a
// QuizResult row. Unanswered or out-of-range selections count as incorrect.
// Both the course-level and lesson-level submit endpoints go through here.
func scoreQuiz(userID uint, quiz *courseModels.Quiz, answers map[string]int) (score int, passed bool, graded []gradedAnswer, err error) {
	var questions []courseModels.QuizQuestion
	if err = database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return 0, false, nil, err
	}
	if len(questions) == 0 {
		return 0, false, nil, errNoQuizConfigured
	}

	correctCount := 0
	graded = make([]gradedAnswer, len(questions))
	for i, question := range questions {
		entry := gradedAnswer{QuestionID: question.ID}
		if selected, ok := answers[strconv.FormatUint(uint64(question.ID), 10)]; ok {
			sel := selected
			entry.Selected = &sel
			if selected == question.AnswerIndex {
				entry.Correct = true
				correctCount++
			}
		}
		graded[i] = entry
	}

	score = int(math.Round(100 * float64(correctCount) / float64(len(questions))))
	passed = score >= quiz.PassingScore

	// Append-only attempt log, prior attempts are never overwritten
	result := courseModels.QuizResult{
		UserID:      userID,
		CourseID:    quiz.CourseID,
		QuizID:      quiz.ID,
		Score:       score,
		Passed:      passed,
		SubmittedAt: time.Now(),
	}
	if err = database.Database.Db.Create(&result).Error; err != nil {
		return 0, false, nil, err
	}

	return score, passed, graded, nil
}

// SubmitCourseQuiz grades a submission against the course-level quiz
func SubmitCourseQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	answers, ok := c.Locals("validatedAnswers").(map[string]int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Prefer the course-level quiz, fall back to any quiz on the course
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("course_id = ? AND lesson_id IS NULL AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
		if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No quiz configured for this course!", nil)
		}
	}

	score, passed, _, err := scoreQuiz(userID, &quiz, answers)
	if err != nil {
		if errors.Is(err, errNoQuizConfigured) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No quiz configured for this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"score":  score,
		"passed": passed,
	})
}

// SubmitLessonQuiz grades a submission against a lesson-scoped quiz
func SubmitLessonQuiz(c *fiber.Ctx) error {
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

	answers, ok := c.Locals("validatedAnswers").(map[string]int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("course_id = ? AND lesson_id = ? AND is_deleted = ?", courseID, lessonID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No quiz configured for this lesson!", nil)
	}

	score, passed, graded, err := scoreQuiz(userID, &quiz, answers)
	if err != nil {
		if errors.Is(err, errNoQuizConfigured) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No quiz configured for this lesson!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"result": fiber.Map{
			"score":         score,
			"passed":        passed,
			"answers":       graded,
			"passing_score": quiz.PassingScore,
		},
	})
}

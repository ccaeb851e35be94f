package controllers

import (
	"encoding/json"
	"log"

	"memarya/database"
	"memarya/middleware"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminCreateQuiz creates a quiz for a course, optionally scoped to a lesson
func AdminCreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title        string `json:"title"`
		LessonID     *uint  `json:"lesson_id"`
		PassingScore *int   `json:"passing_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.LessonID != nil {
		var lesson courseModels.Lesson
		if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", *reqData.LessonID, courseID, false).First(&lesson).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
	}

	quiz := courseModels.Quiz{
		CourseID: uint(courseID),
		LessonID: reqData.LessonID,
		Title:    reqData.Title,
	}
	if reqData.PassingScore != nil {
		quiz.PassingScore = *reqData.PassingScore
	} else {
		quiz.PassingScore = 80
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// AdminAddQuizQuestion appends a multiple choice question to a quiz
func AdminAddQuizQuestion(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		AnswerIndex int      `json:"answer_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	optionsJSON, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options payload!", nil)
	}

	var maxOrder int
	database.Database.Db.Model(&courseModels.QuizQuestion{}).
		Where("quiz_id = ? AND is_deleted = ?", quizID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	question := courseModels.QuizQuestion{
		QuizID:      uint(quizID),
		Question:    reqData.Question,
		Options:     datatypes.JSON(optionsJSON),
		AnswerIndex: reqData.AnswerIndex,
		OrderIndex:  maxOrder + 1,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// AdminUpdateQuizQuestion updates an existing question
func AdminUpdateQuizQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		AnswerIndex int      `json:"answer_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	optionsJSON, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options payload!", nil)
	}

	question.Question = reqData.Question
	question.Options = datatypes.JSON(optionsJSON)
	question.AnswerIndex = reqData.AnswerIndex

	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// AdminDeleteQuizQuestion soft deletes a question
func AdminDeleteQuizQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// AdminDeleteQuiz soft deletes a quiz and its questions
func AdminDeleteQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Quiz{}).Where("id = ?", quizID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.QuizQuestion{}).Where("quiz_id = ?", quizID).Update("is_deleted", true).Error
	})
	if err != nil {
		log.Printf("Error deleting quiz %d: %v", quizID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// AdminListQuizzes lists a course's quizzes with their questions
func AdminListQuizzes(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	type QuizWithQuestions struct {
		courseModels.Quiz
		Questions []courseModels.QuizQuestion `json:"questions"`
	}

	var quizzes []courseModels.Quiz
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	result := make([]QuizWithQuestions, len(quizzes))
	for i, quiz := range quizzes {
		var questions []courseModels.QuizQuestion
		database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
			Order("order_index asc").Find(&questions)
		result[i] = QuizWithQuestions{Quiz: quiz, Questions: questions}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", fiber.Map{
		"quizzes": result,
		"total":   len(result),
	})
}

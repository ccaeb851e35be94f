package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"memarya/database"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")

	resp := doRequest(t, app, http.MethodPost, "/admin/course/create", token, fiber.Map{
		"title":    "Go Fundamentals",
		"category": "programming",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminCourseLifecycle(t *testing.T) {
	app := setupTestApp(t)
	_, adminToken := createAdmin(t, "Root", "root@example.com")

	resp := doRequest(t, app, http.MethodPost, "/admin/course/create", adminToken, fiber.Map{
		"title":       "Go Fundamentals",
		"description": "Learn Go from scratch",
		"category":    "programming",
		"author":      "Jane Doe",
		"duration":    300,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)

	var course courseModels.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, "DRAFT", course.Status)
	assert.False(t, course.IsPublished)

	// Draft courses are invisible to learners
	_, learnerToken := createUser(t, "Asha", "asha@example.com")
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), learnerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", course.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var published courseModels.Course
	require.NoError(t, database.Database.Db.First(&published, course.ID).Error)
	assert.True(t, published.IsPublished)
	assert.Equal(t, "ACTIVE", published.Status)

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), learnerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminLessonSequencing(t *testing.T) {
	app := setupTestApp(t)
	_, adminToken := createAdmin(t, "Root", "root@example.com")
	course, _ := createCourse(t, "Go Fundamentals", 0)

	var created []courseModels.Lesson
	for _, title := range []string{"Intro", "Syntax", "Concurrency"} {
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/lesson", course.ID), adminToken, fiber.Map{
			"title":   title,
			"content": "Lesson body",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		env := decodeEnvelope(t, resp)

		var lesson courseModels.Lesson
		require.NoError(t, json.Unmarshal(env.Data, &lesson))
		created = append(created, lesson)
	}

	// New lessons append to the end of the sequence
	assert.Equal(t, 1, created[0].OrderIndex)
	assert.Equal(t, 2, created[1].OrderIndex)
	assert.Equal(t, 3, created[2].OrderIndex)
	assert.Equal(t, 80, created[0].QuizPassingScore)

	// Reorder must cover every lesson
	resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/admin/course/%d/lessons/reorder", course.ID), adminToken, fiber.Map{
		"lesson_ids": []uint{created[2].ID},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPut, fmt.Sprintf("/admin/course/%d/lessons/reorder", course.ID), adminToken, fiber.Map{
		"lesson_ids": []uint{created[2].ID, created[0].ID, created[1].ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var ordered []courseModels.Lesson
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&ordered).Error)
	require.Len(t, ordered, 3)
	assert.Equal(t, "Concurrency", ordered[0].Title)
	assert.Equal(t, "Intro", ordered[1].Title)
	assert.Equal(t, "Syntax", ordered[2].Title)
}

func TestAdminLessonComponentValidation(t *testing.T) {
	app := setupTestApp(t)
	_, adminToken := createAdmin(t, "Root", "root@example.com")
	course, _ := createCourse(t, "Go Fundamentals", 0)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/lesson", course.ID), adminToken, fiber.Map{
		"title": "Intro",
		"components": []fiber.Map{
			{"type": "text", "body": "Welcome"},
			{"type": "hologram"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/lesson", course.ID), adminToken, fiber.Map{
		"title": "Intro",
		"components": []fiber.Map{
			{"type": "text", "body": "Welcome"},
			{"type": "code", "language": "go", "source": "package main"},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminQuizManagement(t *testing.T) {
	app := setupTestApp(t)
	_, adminToken := createAdmin(t, "Root", "root@example.com")
	course, _ := createCourse(t, "Go Fundamentals", 0)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/quiz", course.ID), adminToken, fiber.Map{
		"title": "Final Exam",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)

	var quiz courseModels.Quiz
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	assert.Equal(t, 80, quiz.PassingScore)
	assert.Nil(t, quiz.LessonID)

	// Questions need at least two options and an in-range answer index
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/quiz/%d/question", quiz.ID), adminToken, fiber.Map{
		"question":     "What is a goroutine?",
		"options":      []string{"A thread"},
		"answer_index": 0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/quiz/%d/question", quiz.ID), adminToken, fiber.Map{
		"question":     "What is a goroutine?",
		"options":      []string{"A thread", "A lightweight unit of execution"},
		"answer_index": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var questions int64
	database.Database.Db.Model(&courseModels.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&questions)
	assert.Equal(t, int64(1), questions)
}

func TestAdminDeleteCourseCascades(t *testing.T) {
	app := setupTestApp(t)
	_, adminToken := createAdmin(t, "Root", "root@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 2)
	createQuiz(t, course.ID, &lessons[0].ID, 80, 0)

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/admin/course/%d", course.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var activeLessons, activeQuizzes int64
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&activeLessons)
	database.Database.Db.Model(&courseModels.Quiz{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&activeQuizzes)
	assert.Equal(t, int64(0), activeLessons)
	assert.Equal(t, int64(0), activeQuizzes)
}

package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"memarya/database"
	courseModels "memarya/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressPayload struct {
	Progress       int    `json:"progress"`
	Completed      bool   `json:"completed"`
	CertificateURL string `json:"certificate_url"`
}

func TestMarkLessonCompleteAdvancesProgress(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 2)
	enrollUser(t, app, token, course.ID)

	resp, env := markLesson(t, app, token, lessons[0].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Status)

	var payload progressPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 50, payload.Progress)
	assert.True(t, payload.Completed)
	assert.Empty(t, payload.CertificateURL)

	resp, env = markLesson(t, app, token, lessons[1].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 100, payload.Progress)
	assert.Contains(t, payload.CertificateURL, fmt.Sprintf("/certificates/%d/pdf", course.ID))

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&enrollment).Error)
	assert.Equal(t, "COMPLETED", enrollment.Status)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, 2, enrollment.CompletedLessons)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 2)
	enrollUser(t, app, token, course.ID)

	for i := 0; i < 3; i++ {
		resp, env := markLesson(t, app, token, lessons[0].ID, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload progressPayload
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		assert.Equal(t, 50, payload.Progress)
	}

	// Repeated writes update the same row instead of stacking duplicates
	var rows int64
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("lesson_id = ?", lessons[0].ID).Count(&rows)
	assert.Equal(t, int64(1), rows)

	// Completing the whole course twice never produces a second certificate
	markLesson(t, app, token, lessons[1].ID, true)
	markLesson(t, app, token, lessons[1].ID, true)

	var certs int64
	database.Database.Db.Model(&courseModels.Certificate{}).
		Where("course_id = ?", course.ID).Count(&certs)
	assert.Equal(t, int64(1), certs)
}

func TestMarkLessonCompleteQuizGate(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 2)
	enrollUser(t, app, token, course.ID)

	require.NoError(t, database.Database.Db.Model(&lessons[1]).Update("requires_quiz", true).Error)
	_, questions := createQuiz(t, course.ID, nil, 80, 0, 1)

	resp, env := markLesson(t, app, token, lessons[0].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload progressPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 50, payload.Progress)

	// Gated lesson is rejected until a passing quiz result exists
	resp, env = markLesson(t, app, token, lessons[1].ID, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, env.Status)

	var gate struct {
		RequiresQuiz     bool `json:"requires_quiz"`
		QuizPassingScore int  `json:"quiz_passing_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &gate))
	assert.True(t, gate.RequiresQuiz)
	assert.Equal(t, 80, gate.QuizPassingScore)

	// A failing attempt does not open the gate
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/learn/%d/quiz/submit", course.ID), token, fiber.Map{
		"answers": map[string]int{strconv.Itoa(int(questions[0].ID)): 0},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, _ = markLesson(t, app, token, lessons[1].ID, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A passing attempt does
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/learn/%d/quiz/submit", course.ID), token, fiber.Map{
		"answers": map[string]int{
			strconv.Itoa(int(questions[0].ID)): 0,
			strconv.Itoa(int(questions[1].ID)): 1,
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, env = markLesson(t, app, token, lessons[1].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 100, payload.Progress)
	assert.NotEmpty(t, payload.CertificateURL)
}

func TestMarkLessonCompleteUnmarkLowersProgress(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 1)
	enrollUser(t, app, token, course.ID)

	resp, env := markLesson(t, app, token, lessons[0].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload progressPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 100, payload.Progress)

	resp, env = markLesson(t, app, token, lessons[0].ID, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 0, payload.Progress)
	assert.False(t, payload.Completed)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&enrollment).Error)
	assert.Equal(t, "ENROLLED", enrollment.Status)
}

func TestMarkLessonCompleteErrors(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	_, lessons := createCourse(t, "Go Fundamentals", 1)

	// Missing token
	resp := doRequest(t, app, http.MethodPost, "/progress", "", fiber.Map{
		"lesson_id": lessons[0].ID,
		"completed": true,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Unknown lesson
	resp, _ = markLesson(t, app, token, 9999, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Not enrolled
	resp, _ = markLesson(t, app, token, lessons[0].ID, true)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetUserProgress(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 3)
	enrollUser(t, app, token, course.ID)

	_, _ = markLesson(t, app, token, lessons[1].ID, true)

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)

	var payload struct {
		Enrollment courseModels.Enrollment `json:"enrollment"`
		Lessons    []struct {
			LessonID  uint `json:"lesson_id"`
			Completed bool `json:"completed"`
		} `json:"lessons"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Len(t, payload.Lessons, 3)
	assert.Equal(t, 33, payload.Enrollment.Progress)
	assert.Equal(t, "IN_PROGRESS", payload.Enrollment.Status)
	assert.False(t, payload.Lessons[0].Completed)
	assert.True(t, payload.Lessons[1].Completed)
	assert.False(t, payload.Lessons[2].Completed)
}

func TestAdminDeleteLessonRecomputesProgress(t *testing.T) {
	app := setupTestApp(t)
	user, token := createUser(t, "Asha", "asha@example.com")
	_, adminToken := createAdmin(t, "Root", "root@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 2)
	enrollUser(t, app, token, course.ID)

	resp, _ := markLesson(t, app, token, lessons[0].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = markLesson(t, app, token, lessons[1].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/admin/course/%d/lesson/%d", course.ID, lessons[0].ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The deleted lesson's completion row goes with it and the cached
	// percentage is rebuilt from the surviving lesson only
	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, 1, enrollment.CompletedLessons)
	assert.Equal(t, 1, enrollment.TotalLessons)

	// Re-marking the surviving lesson cannot push the percentage past 100
	resp, env := markLesson(t, app, token, lessons[1].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload progressPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 100, payload.Progress)

	require.NoError(t, database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.Progress)
}

func TestAdminDeleteLessonDropsItsCompletions(t *testing.T) {
	app := setupTestApp(t)
	user, token := createUser(t, "Asha", "asha@example.com")
	_, adminToken := createAdmin(t, "Root", "root@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 2)
	enrollUser(t, app, token, course.ID)

	resp, _ := markLesson(t, app, token, lessons[0].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/admin/course/%d/lesson/%d", course.ID, lessons[0].ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, 0, enrollment.Progress)
	assert.Equal(t, 0, enrollment.CompletedLessons)
	assert.Equal(t, 1, enrollment.TotalLessons)
	assert.Equal(t, "ENROLLED", enrollment.Status)

	var liveRows int64
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("lesson_id = ? AND is_deleted = ?", lessons[0].ID, false).Count(&liveRows)
	assert.Equal(t, int64(0), liveRows)
}

func TestMarkLessonCompleteQuizGateUsesLessonThreshold(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	course, lessons := createCourse(t, "Go Fundamentals", 1)
	enrollUser(t, app, token, course.ID)

	require.NoError(t, database.Database.Db.Model(&lessons[0]).Update("requires_quiz", true).Error)

	// The quiz passes at 50 but the gated lesson demands 80
	_, questions := createQuiz(t, course.ID, nil, 50, 0, 1, 2, 3)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/learn/%d/quiz/submit", course.ID), token, fiber.Map{
		"answers": map[string]int{
			strconv.Itoa(int(questions[0].ID)): 0,
			strconv.Itoa(int(questions[1].ID)): 1,
			strconv.Itoa(int(questions[2].ID)): 2,
			strconv.Itoa(int(questions[3].ID)): 0,
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Score  int  `json:"score"`
		Passed bool `json:"passed"`
	}
	env := decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Passed)

	// 75 clears the quiz's own bar but not the lesson's, and the rejection
	// reports the number the gate actually checked
	resp, env = markLesson(t, app, token, lessons[0].ID, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var gate struct {
		RequiresQuiz     bool `json:"requires_quiz"`
		QuizPassingScore int  `json:"quiz_passing_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &gate))
	assert.True(t, gate.RequiresQuiz)
	assert.Equal(t, 80, gate.QuizPassingScore)

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/learn/%d/quiz/submit", course.ID), token, fiber.Map{
		"answers": map[string]int{
			strconv.Itoa(int(questions[0].ID)): 0,
			strconv.Itoa(int(questions[1].ID)): 1,
			strconv.Itoa(int(questions[2].ID)): 2,
			strconv.Itoa(int(questions[3].ID)): 3,
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, _ = markLesson(t, app, token, lessons[0].ID, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

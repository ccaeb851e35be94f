package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"memarya/config"
	"memarya/database"
	"memarya/middleware"
	"memarya/models"
	courseModels "memarya/models/course"
	courseRoutes "memarya/routers/courseRoutes"
	userRoutes "memarya/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// envelope mirrors the JSON shape every handler responds with
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupTestApp wires the routes against a fresh in-memory database
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive across queries
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app
}

func createUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()
	user := models.User{
		Name:            name,
		Email:           email,
		Role:            "USER",
		Password:        "not-a-real-hash",
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createAdmin(t *testing.T, name, email string) (models.User, string) {
	t.Helper()
	admin := models.User{
		Name:            name,
		Email:           email,
		Role:            "ADMIN",
		Password:        "not-a-real-hash",
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return admin, token
}

func createCourse(t *testing.T, title string, lessonCount int) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()
	course := courseModels.Course{
		Title:       title,
		Description: "Test course",
		Category:    "programming",
		Author:      "Test Author",
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	lessons := make([]courseModels.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = courseModels.Lesson{
			CourseID:         course.ID,
			Title:            fmt.Sprintf("Lesson %d", i+1),
			Content:          "Lesson body",
			OrderIndex:       i + 1,
			QuizPassingScore: 80,
		}
		require.NoError(t, database.Database.Db.Create(&lessons[i]).Error)
	}
	return course, lessons
}

// createQuiz attaches a quiz with one question per entry in answerIndexes.
// Every question carries four options; the given index is the correct one.
func createQuiz(t *testing.T, courseID uint, lessonID *uint, passingScore int, answerIndexes ...int) (courseModels.Quiz, []courseModels.QuizQuestion) {
	t.Helper()
	quiz := courseModels.Quiz{
		CourseID:     courseID,
		LessonID:     lessonID,
		Title:        "Checkpoint",
		PassingScore: passingScore,
	}
	require.NoError(t, database.Database.Db.Create(&quiz).Error)

	questions := make([]courseModels.QuizQuestion, len(answerIndexes))
	for i, answerIndex := range answerIndexes {
		options, err := json.Marshal([]string{"A", "B", "C", "D"})
		require.NoError(t, err)
		questions[i] = courseModels.QuizQuestion{
			QuizID:      quiz.ID,
			Question:    fmt.Sprintf("Question %d", i+1),
			Options:     datatypes.JSON(options),
			AnswerIndex: answerIndex,
			OrderIndex:  i + 1,
		}
		require.NoError(t, database.Database.Db.Create(&questions[i]).Error)
	}
	return quiz, questions
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func enrollUser(t *testing.T, app *fiber.App, token string, courseID uint) {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// markLesson posts a completion flag and returns the decoded envelope
func markLesson(t *testing.T, app *fiber.App, token string, lessonID uint, completed bool) (*http.Response, envelope) {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/progress", token, fiber.Map{
		"lesson_id": lessonID,
		"completed": completed,
	})
	return resp, decodeEnvelope(t, resp)
}

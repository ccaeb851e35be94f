package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"memarya/database"
	courseModels "memarya/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollInCourse(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	course, _ := createCourse(t, "Go Fundamentals", 3)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	require.True(t, env.Status)

	var enrollment courseModels.Enrollment
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	assert.Equal(t, "ENROLLED", enrollment.Status)
	assert.Equal(t, 3, enrollment.TotalLessons)
	assert.Equal(t, 0, enrollment.Progress)

	// Enrolling twice conflicts
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestEnrollInUnpublishedCourse(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")

	course := courseModels.Course{Title: "Draft Course", Category: "programming"}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetUserEnrollments(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com")
	courseA, _ := createCourse(t, "Go Fundamentals", 1)
	courseB, _ := createCourse(t, "Distributed Systems", 1)
	enrollUser(t, app, token, courseA.ID)
	enrollUser(t, app, token, courseB.ID)

	resp := doRequest(t, app, http.MethodGet, "/user/enrollments", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)

	var payload struct {
		Enrollments []struct {
			CourseID    uint   `json:"course_id"`
			CourseTitle string `json:"course_title"`
		} `json:"enrollments"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 2, payload.Total)
	require.Len(t, payload.Enrollments, 2)

	titles := map[uint]string{}
	for _, e := range payload.Enrollments {
		titles[e.CourseID] = e.CourseTitle
	}
	assert.Equal(t, "Go Fundamentals", titles[courseA.ID])
	assert.Equal(t, "Distributed Systems", titles[courseB.ID])
}

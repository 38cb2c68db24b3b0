package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackstanton/punchclock/internal/app/controllers"
	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/app/models/dto"
	"github.com/blackstanton/punchclock/internal/app/repositories/memory"
	"github.com/blackstanton/punchclock/internal/app/routes"
	"github.com/blackstanton/punchclock/internal/app/services"
	"github.com/blackstanton/punchclock/internal/pkg/filestorage"
)

type apiFixture struct {
	router     *gin.Engine
	teacher    *models.Teacher
	student    *models.Student
	task       *models.Task
	storageDir string
}

// newAPIFixture builds the full router over an in-memory store seeded
// with one teacher, one student, and one task.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	store := memory.NewStore()

	teacherSvc := services.NewTeacherService(store.Teachers, store.Students)
	studentSvc := services.NewStudentService(store.Students, store.Teachers)
	taskSvc := services.NewTaskService(store.Tasks)
	punchSvc := services.NewPunchService(store.Punches, store.Students, store.Tasks)

	storageDir := t.TempDir()
	fileStorage, err := filestorage.NewLocalStorage(storageDir, "")
	require.NoError(t, err)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewTeacherController(teacherSvc, fileStorage),
		controllers.NewStudentController(studentSvc, punchSvc),
		controllers.NewTaskController(taskSvc),
		controllers.NewPunchController(punchSvc),
	)

	teacher := &models.Teacher{FirstName: "Pat", LastName: "Miller"}
	require.NoError(t, teacherSvc.Create(ctx, teacher))

	student, err := studentSvc.Create(ctx, services.StudentInput{
		FirstName: "Alex",
		LastName:  "Nguyen",
		Age:       "17",
		Year:      "11",
		TeacherID: teacher.ID,
	})
	require.NoError(t, err)

	task := &models.Task{Name: "Framing practice"}
	require.NoError(t, taskSvc.Create(ctx, task))

	return &apiFixture{router: router, teacher: teacher, student: student, task: task, storageDir: storageDir}
}

func (f *apiFixture) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodePunch(t *testing.T, w *httptest.ResponseRecorder) dto.PunchResponse {
	t.Helper()
	var resp struct {
		Data dto.PunchResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Data
}

func TestPunchEndpoints_Lifecycle(t *testing.T) {
	f := newAPIFixture(t)

	// Open
	w := f.do(t, http.MethodPost, "/api/v1/punches", map[string]any{
		"studentId": f.student.ID,
		"taskId":    f.task.ID,
		"timeStart": "2026-03-09T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	opened := decodePunch(t, w)
	assert.NotZero(t, opened.ID)
	assert.Equal(t, "open", opened.State)
	assert.Nil(t, opened.Minutes)

	// Close
	w = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/punches/%d/close", opened.ID), map[string]any{
		"timeEnd": "2026-03-09T09:45:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code)
	closed := decodePunch(t, w)
	assert.Equal(t, "closed", closed.State)
	require.NotNil(t, closed.Minutes)
	assert.Equal(t, int64(45), *closed.Minutes)

	// Second close is an invalid state
	w = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/punches/%d/close", opened.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPunchEndpoints_CloseWithEmptyBody(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/punches", map[string]any{
		"studentId": f.student.ID,
		"taskId":    f.task.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	opened := decodePunch(t, w)

	// No body at all: close at the current instant
	w = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/punches/%d/close", opened.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	closed := decodePunch(t, w)
	assert.Equal(t, "closed", closed.State)
	require.NotNil(t, closed.TimeEnd)
	assert.WithinDuration(t, time.Now().UTC(), *closed.TimeEnd, 2*time.Second)
}

func TestPunchEndpoints_Errors(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("unknown references are a validation failure", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/punches", map[string]any{
			"studentId": 999,
			"taskId":    999,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	})

	t.Run("closing an unknown punch is not found", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/punches/999/close", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("a non-numeric punch id is rejected", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/punches/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("an inverted backfill interval is rejected", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/punches/backfill", map[string]any{
			"studentId": f.student.ID,
			"taskId":    f.task.ID,
			"timeStart": "2026-03-09T14:00:00Z",
			"timeEnd":   "2026-03-09T13:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPunchEndpoints_Backfill(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/punches/backfill", map[string]any{
		"studentId": f.student.ID,
		"taskId":    f.task.ID,
		"timeStart": "2026-03-09T13:00:00Z",
		"timeEnd":   "2026-03-09T14:30:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	punch := decodePunch(t, w)
	assert.Equal(t, "closed", punch.State)
	require.NotNil(t, punch.Minutes)
	assert.Equal(t, int64(90), *punch.Minutes)
}

func TestStudentPunchesEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/punches", map[string]any{
		"studentId": f.student.ID,
		"taskId":    f.task.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/students/%d/punches", f.student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []dto.PunchResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, f.student.ID, resp.Data[0].StudentID)

	w = f.do(t, http.MethodGet, "/api/v1/students/999/punches", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentDeleteEndpoint_ConflictWithPunches(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/punches", map[string]any{
		"studentId": f.student.ID,
		"taskId":    f.task.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The student's punch blocks the delete
	w = f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/students/%d", f.student.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, dto.ErrorCodeConflict, resp.Error.Code)

	// The task the punch references is equally protected
	w = f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", f.task.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTeacherDeleteEndpoint_Conflict(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/teachers/%d", f.teacher.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, dto.ErrorCodeConflict, resp.Error.Code)

	// Remove the assigned student, then the delete goes through
	w = f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/students/%d", f.student.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/teachers/%d", f.teacher.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/app/models/dto"
)

// uploadPhoto posts a multipart photo for the given teacher id.
func (f *apiFixture) uploadPhoto(t *testing.T, teacherID int64, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/teachers/%d/photo", teacherID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) storedPhotos(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.storageDir, "teachers"))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func decodeTeacher(t *testing.T, w *httptest.ResponseRecorder) models.Teacher {
	t.Helper()
	var resp struct {
		Data models.Teacher `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Data
}

func TestTeacherPhotoUpload(t *testing.T) {
	f := newAPIFixture(t)

	w := f.uploadPhoto(t, f.teacher.ID, "first photo bytes")
	require.Equal(t, http.StatusOK, w.Code)
	first := decodeTeacher(t, w)
	assert.NotEmpty(t, first.PhotoURL)
	assert.Len(t, f.storedPhotos(t), 1)

	// A fresh upload replaces the stored file instead of piling up
	w = f.uploadPhoto(t, f.teacher.ID, "second photo bytes")
	require.Equal(t, http.StatusOK, w.Code)
	second := decodeTeacher(t, w)
	assert.NotEmpty(t, second.PhotoURL)
	assert.NotEqual(t, first.PhotoURL, second.PhotoURL)
	assert.Len(t, f.storedPhotos(t), 1)
}

func TestTeacherPhotoUpload_Errors(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("missing file part", func(t *testing.T) {
		w := f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/teachers/%d/photo", f.teacher.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	})

	t.Run("unknown teacher writes nothing to disk", func(t *testing.T) {
		w := f.uploadPhoto(t, 999, "photo bytes")
		assert.Equal(t, http.StatusNotFound, w.Code)

		_, err := os.ReadDir(filepath.Join(f.storageDir, "teachers"))
		assert.True(t, os.IsNotExist(err))
	})
}

package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

func TestJSON(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := model.Task{ID: 42, Title: "Teste", Description: "Descrição", Status: model.StatusOpen, CreatedAt: created, UpdatedAt: created}

	tests := []struct {
		name     string
		method   string
		code     int
		data     interface{}
		wantBody string
	}{
		{
			name:   "created task",
			method: http.MethodPost,
			code:   http.StatusCreated,
			data:   task,
			wantBody: `{"id":42,"title":"Teste","description":"Descrição","status":"open",
				"createdAt":"2024-05-01T12:00:00Z","updatedAt":"2024-05-01T12:00:00Z"}`,
		},
		{
			name:     "task list",
			method:   http.MethodGet,
			code:     http.StatusOK,
			data:     []model.Task{task},
			wantBody: `[{"id":42,"title":"Teste","description":"Descrição","status":"open","createdAt":"2024-05-01T12:00:00Z","updatedAt":"2024-05-01T12:00:00Z"}]`,
		},
		{
			name:     "empty task list",
			method:   http.MethodGet,
			code:     http.StatusOK,
			data:     []model.Task{},
			wantBody: `[]`,
		},
		{
			name:     "health",
			method:   http.MethodGet,
			code:     http.StatusServiceUnavailable,
			data:     map[string]string{"status": "unavailable"},
			wantBody: `{"status":"unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, "/tasks", nil)

			JSON(w, r, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestError(t *testing.T) {
	tests := map[string]struct {
		code    int
		message string
	}{
		"malformed id":      {http.StatusBadRequest, "id must be an integer"},
		"unknown field":     {http.StatusBadRequest, `json: unknown field "Title"`},
		"missing task":      {http.StatusNotFound, "not found"},
		"store unavailable": {http.StatusInternalServerError, "internal error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/tasks/1", nil)

			Error(w, r, tt.code, tt.message)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var got map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, map[string]interface{}{"error": tt.message}, got, "no details key without details")
		})
	}
}

func TestErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/tasks", nil)

	ErrorWithDetails(w, r, http.StatusBadRequest, "validation error", map[string]string{"title": "cannot be blank"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "validation error", got.Error)
	assert.Equal(t, "cannot be blank", got.Details["title"])
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/tasks/1", nil)

	NoContent(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

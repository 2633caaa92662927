package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"stakehub/internal/service"
	"stakehub/internal/transport/rest/middleware"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{"validation", fmt.Errorf("%w: name is required", service.ErrValidation), http.StatusBadRequest, `{"error":"validation failed: name is required"}`},
		{"duplicate", fmt.Errorf("%w: Ann Manages Bob", service.ErrDuplicate), http.StatusConflict, ""},
		{"internal", errors.New("mongo: connection reset"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=3&bad=-2&word=abc&upcoming=true&overdue=yes", nil)

	assert.Equal(t, 3, queryInt(r, "page", 1))
	assert.Equal(t, 1, queryInt(r, "bad", 1))
	assert.Equal(t, 7, queryInt(r, "word", 7))
	assert.Equal(t, 7, queryInt(r, "missing", 7))
	assert.True(t, queryBool(r, "upcoming"))
	assert.False(t, queryBool(r, "overdue"))
}

func TestRequireOwner(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := requireOwner(rec, httptest.NewRequest("GET", "/", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(middleware.WithOwnerID(r.Context(), "o1"))
	id, ok := requireOwner(httptest.NewRecorder(), r)
	assert.True(t, ok)
	assert.Equal(t, "o1", id)
}

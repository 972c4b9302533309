package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("No guides in the database."),
			expected: "NOT_FOUND: No guides in the database.",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("internal error", errors.New("database connection failed")),
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestConstructors_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"not found", NotFound("x"), http.StatusNotFound},
		{"not found with id", NotFoundWithID("Guide", "1"), http.StatusNotFound},
		{"bad request", BadRequest("x", nil), http.StatusBadRequest},
		{"validation", Validation("x", nil), http.StatusBadRequest},
		{"invalid input", InvalidInput("x"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("x"), http.StatusUnauthorized},
		{"forbidden", Forbidden("x"), http.StatusForbidden},
		{"conflict", Conflict("x"), http.StatusConflict},
		{"internal", Internal("x", nil), http.StatusInternalServerError},
		{"timeout", Timeout("x"), http.StatusGatewayTimeout},
		{"unavailable", Unavailable("redis"), http.StatusServiceUnavailable},
		{"too large", TooLarge("x"), http.StatusRequestEntityTooLarge},
		{"unsupported media", UnsupportedMedia("x"), http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := BadRequest("wrapped", originalErr)

	assert.ErrorIs(t, appErr, originalErr)
}

func TestAsAppError(t *testing.T) {
	t.Run("finds wrapped app error", func(t *testing.T) {
		inner := NotFound("gone")
		wrapped := fmt.Errorf("transaction failed: %w", inner)

		assert.True(t, IsAppError(wrapped))
		assert.Same(t, inner, AsAppError(wrapped))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := AsAppError(errors.New("boom"))

		assert.Equal(t, CodeInternal, got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
	})
}

func TestWithStatus_DoesNotMutateOriginal(t *testing.T) {
	original := NotFound("Please enter a valid guide-id.")
	changed := WithStatus(original, http.StatusBadRequest)

	assert.Equal(t, http.StatusNotFound, original.StatusCode())
	assert.Equal(t, http.StatusBadRequest, changed.StatusCode())
	assert.Equal(t, original.Message, changed.Message)
}

package http

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "sandgrund/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteCreated(w, "Guide successfully created.", map[string]string{"fullName": "Anna"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 201, body["statusCode"])
	assert.Equal(t, "Guide successfully created.", body["message"])
	assert.NotNil(t, body["data"])
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"app error", apperrors.NotFound("No guides in the database."), http.StatusNotFound, "No guides in the database."},
		{"plain error", errors.New("mongo exploded"), http.StatusInternalServerError, "An unexpected error occurred"},
		{"bad request", apperrors.BadRequest("E11000 duplicate key", nil), http.StatusBadRequest, "E11000 duplicate key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, WriteError(w, tt.err))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus, body.StatusCode)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestYearParam(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"?year=2024", 2024, false},
		{"", time.Now().UTC().Year(), false},
		{"?year=abc", 0, true},
		{"?year=12", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/tours/bookings"+tt.query, nil)
			got, err := YearParam(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?email=A@B.com&fullName=&token=1", nil)

	assert.Equal(t, map[string]string{"email": "A@B.com"}, QueryFields(r, "token"))
}

func TestBaseURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://tours.local:8000/upload", nil)
	assert.Equal(t, "http://tours.local:8000", BaseURL(r))

	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://tours.local:8000", BaseURL(r))

	r.Header.Set("X-Forwarded-Proto", "http")
	r.Header.Set("X-Forwarded-Host", "sandgrund.example")
	assert.Equal(t, "http://sandgrund.example", BaseURL(r))
}

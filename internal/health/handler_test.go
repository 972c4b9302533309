package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sandgrund/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func TestHealth(t *testing.T) {
	router := httprouter.New()
	NewHandler(nil, logger.Discard()).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReady(t *testing.T) {
	tests := []struct {
		name     string
		checks   map[string]Pinger
		wantCode int
		wantDeps map[string]string
	}{
		{
			name:     "all dependencies up",
			checks:   map[string]Pinger{"mongo": PingFunc(ok), "redis": PingFunc(ok)},
			wantCode: http.StatusOK,
			wantDeps: map[string]string{"mongo": "ok", "redis": "ok"},
		},
		{
			name: "redis down",
			checks: map[string]Pinger{
				"mongo": PingFunc(ok),
				"redis": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
			},
			wantCode: http.StatusServiceUnavailable,
			wantDeps: map[string]string{"mongo": "ok", "redis": "error"},
		},
		{
			name:     "nil pinger skipped",
			checks:   map[string]Pinger{"mongo": PingFunc(ok), "redis": nil},
			wantCode: http.StatusOK,
			wantDeps: map[string]string{"mongo": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHandler(tt.checks, logger.Discard()).RegisterRoutes(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.Equal(t, tt.wantCode, w.Code)

			var got Status
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantDeps, got.Dependencies)
		})
	}
}

package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sandgrund/pkg/config"
	httputil "sandgrund/pkg/http"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/metrics"
	"sandgrund/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(r *httprouter.Router) {
	r.GET("/api/v1/ping", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		_ = httputil.WriteSuccess(w, "pong", nil)
	})
	r.GET("/api/v1/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
		panic("boom")
	})
}

func newTestApp(t *testing.T, staticDir string) http.Handler {
	t.Helper()
	cfg := config.FromEnv("test")
	cfg.Log = logger.Discard()

	a := NewApplication(cfg, metrics.New("test"))
	if staticDir != "" {
		a.ServeStatic(staticDir)
	}
	a.SetApp(pingHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a.Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestApplication_Routes(t *testing.T) {
	h := newTestApp(t, "")

	w := get(h, "/api/v1/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	assert.Equal(t, http.StatusOK, get(h, "/health").Code)
	assert.Equal(t, http.StatusOK, get(h, "/ready").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/api/v1/missing").Code)
	assert.Equal(t, http.StatusInternalServerError, get(h, "/api/v1/panic").Code)

	metricsBody := get(h, "/metrics").Body.String()
	assert.True(t, strings.Contains(metricsBody, `sandgrund_http_requests_total`))
	assert.Contains(t, metricsBody, `route="/api/v1/ping"`)
}

func TestApplication_ServesUploadedImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1718000000000.png"), []byte("png"), 0o644))

	h := newTestApp(t, dir)

	w := get(h, "/public/img/guides/1718000000000.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())

	assert.Equal(t, http.StatusNotFound, get(newTestApp(t, ""), "/public/img/guides/1718000000000.png").Code)
}

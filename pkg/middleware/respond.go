package middleware

import (
	"net/http"

	httputil "sandgrund/pkg/http"
	"sandgrund/pkg/logger"
)

// reject logs at warn level and writes an envelope with status and message.
func reject(w http.ResponseWriter, log *logger.Logger, r *http.Request, status int, message string, attrs ...any) {
	args := append([]any{
		"request_id", logger.RequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
	}, attrs...)
	log.Warn(message, args...)

	if err := httputil.WriteEnvelope(w, status, message, nil); err != nil {
		log.Error("failed to write rejection", "error", err)
	}
}

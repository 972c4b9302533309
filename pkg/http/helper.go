package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "sandgrund/pkg/errors"
)

const MsgInvalidYear = "Please provide a valid year."

// YearParam reads ?year=, defaulting to the current UTC year when absent.
func YearParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" {
		return time.Now().UTC().Year(), nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year < 1970 || year > 9999 {
		return 0, apperrors.InvalidInput(MsgInvalidYear)
	}
	return year, nil
}

// QueryFields returns the first value of each query parameter except the
// excluded ones, dropping empty values.
func QueryFields(r *http.Request, exclude ...string) map[string]string {
	skip := make(map[string]struct{}, len(exclude))
	for _, key := range exclude {
		skip[key] = struct{}{}
	}

	fields := map[string]string{}
	for key, values := range r.URL.Query() {
		if _, ok := skip[key]; ok {
			continue
		}
		if len(values) == 0 || values[0] == "" {
			continue
		}
		fields[key] = values[0]
	}
	return fields
}

// BaseURL rebuilds scheme://host of the incoming request, honouring proxy headers.
func BaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host := r.Host
	if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		host = strings.TrimSpace(strings.Split(forwardedHost, ",")[0])
	}
	return scheme + "://" + host
}

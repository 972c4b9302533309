package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sandgrund/pkg/auth"
	httputil "sandgrund/pkg/http"
	"sandgrund/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httputil.Envelope {
	t.Helper()
	var env httputil.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, nil, logger.Discard())
	defer limiter.Stop()
	h := RateLimit(limiter)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/guides/getGuides", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per client")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.9:1234"
	assert.Equal(t, "192.168.1.9", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}

func TestContentTypeValidation(t *testing.T) {
	h := ContentTypeValidation(logger.Discard())(okHandler())

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		want        int
	}{
		{"json post", http.MethodPost, "application/json; charset=utf-8", "{}", http.StatusOK},
		{"multipart upload", http.MethodPost, "multipart/form-data; boundary=x", "--x--", http.StatusOK},
		{"text patch", http.MethodPatch, "text/plain", "hi", http.StatusUnsupportedMediaType},
		{"bodyless post", http.MethodPost, "", "", http.StatusOK},
		{"get ignored", http.MethodGet, "text/plain", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeEnvelope(t, rec).Message)
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Request timeout", decodeEnvelope(t, rec).Message)
}

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"statusCode":201}`))
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/guides/createGuide", strings.NewReader("{}"))
		req.Header.Set(DefaultIdempotencyHeader, "k1")
		req.Header.Set("Authorization", "Bearer staff-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"statusCode":201}`, rec.Body.String())
	}
	assert.Equal(t, 1, calls)
}

func TestIdempotency_ScopedToCredentials(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"statusCode":401}`))
			return
		}
		_, _ = w.Write([]byte(`{"resetToken":"SECRET"}`))
	}))

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantReplayed  bool
		wantCalls     int
	}{
		{name: "first authenticated call", authorization: "Bearer a", wantStatus: http.StatusOK, wantCalls: 1},
		{name: "same key without token", authorization: "", wantStatus: http.StatusUnauthorized, wantCalls: 2},
		{name: "same key other token", authorization: "Bearer b", wantStatus: http.StatusOK, wantCalls: 3},
		{name: "same key same token", authorization: "Bearer a", wantStatus: http.StatusOK, wantReplayed: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/resetPassword", strings.NewReader(`{"email":"a@b.se"}`))
			req.Header.Set(DefaultIdempotencyHeader, "k1")
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantReplayed, rec.Header().Get("Idempotent-Replayed") == "true")
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotContains(t, rec.Body.String(), "SECRET")
			}
		})
	}
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/v1/guides/updateGuide", routeLabel("/api/v1/guides/updateGuide/6543"))
	assert.Equal(t, "/health", routeLabel("/health"))
}

func TestAuthenticate(t *testing.T) {
	issuer := auth.NewIssuer(testSecret, time.Hour)
	denylist := auth.NewMemoryDenylist()
	a := NewAuthenticator(issuer, denylist, logger.Discard())

	var seen *auth.Claims
	handle := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen, _ = auth.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token, _, err := issuer.Issue("u1", "Anna", "anna@sandgrund.se", "staff")
	require.NoError(t, err)

	revokedToken, exp, err := issuer.Issue("u2", "Bo", "bo@sandgrund.se", "staff")
	require.NoError(t, err)
	revokedClaims, err := issuer.Parse(revokedToken)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), revokedClaims.ID, exp))

	tests := []struct {
		name    string
		header  string
		want    int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, MsgNotLoggedIn},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, MsgBadAuthHeader},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, MsgInvalidToken},
		{"revoked token", "Bearer " + revokedToken, http.StatusUnauthorized, MsgRevokedToken},
		{"valid token", "Bearer " + token, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handle(rec, req, httprouter.Params{})

			assert.Equal(t, tt.want, rec.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, decodeEnvelope(t, rec).Message)
				assert.Nil(t, seen)
			} else {
				require.NotNil(t, seen)
				assert.Equal(t, "Anna", seen.Name)
			}
		})
	}
}

func TestRestrictTo(t *testing.T) {
	a := NewAuthenticator(auth.NewIssuer(testSecret, time.Hour), nil, logger.Discard())
	handle := a.RestrictTo("admin")(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{Role: "staff"}))
	rec := httptest.NewRecorder()
	handle(rec, req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{Role: "admin"}))
	rec = httptest.NewRecorder()
	handle(rec, req, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

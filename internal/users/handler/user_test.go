package handler

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
	"sandgrund/pkg/middleware"
	"sandgrund/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-test-secret-that-is-long-enough-for-hs256"

type mockUserService struct {
	deleted string
}

func (m *mockUserService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.Session, error) {
	return &model.Session{Token: "t", User: &model.User{Name: req.Name, Email: req.Email}}, nil
}

func (m *mockUserService) LogIn(ctx context.Context, creds *model.Credentials) (*model.Session, error) {
	return &model.Session{Token: "login-token", User: &model.User{Email: creds.Email}}, nil
}

func (m *mockUserService) List(ctx context.Context) ([]model.User, error) {
	return []model.User{{Name: "Eva"}}, nil
}

func (m *mockUserService) LogOut(ctx context.Context) error { return nil }

func (m *mockUserService) ForgotPassword(ctx context.Context, req *model.ResetRequest) (string, error) {
	return "raw-reset-token", nil
}

func (m *mockUserService) ResetPassword(ctx context.Context, token string, req *model.NewPasswordRequest) (*model.Session, error) {
	return &model.Session{Token: "fresh"}, nil
}

func (m *mockUserService) UpdateMe(ctx context.Context, update *model.UserUpdate) (*model.User, error) {
	return &model.User{Name: *update.Name}, nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, email string) error {
	m.deleted = email
	return nil
}

func setup(t *testing.T) (*httprouter.Router, *mockUserService, *auth.Issuer) {
	t.Helper()
	log := logger.Discard()
	issuer := auth.NewIssuer(testSecret, time.Hour)
	svc := &mockUserService{}

	router := httprouter.New()
	NewUserHandler(svc, middleware.NewAuthenticator(issuer, auth.NewMemoryDenylist(), log), log).RegisterRoutes(router)
	return router, svc, issuer
}

func serve(router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	router, _, _ := setup(t)

	w := serve(router, http.MethodPost, "/api/v1/users/signUp", "", `{"name":"Eva","email":"eva@sandgrund.se"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(router, http.MethodPost, "/api/v1/users/logIn", "", `{"email":"eva@sandgrund.se","password":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data model.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "login-token", body.Data.Token)

	w = serve(router, http.MethodGet, "/api/v1/users/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router, _, _ := setup(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/users/logOut"},
		{http.MethodPost, "/api/v1/users/resetPassword"},
		{http.MethodPatch, "/api/v1/users/resetPassword/abc"},
		{http.MethodPatch, "/api/v1/users/updateMe"},
		{http.MethodDelete, "/api/v1/users/deleteUser/a@b.se"},
	} {
		w := serve(router, route.method, route.path, "", "{}")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestResetPassword_ReturnsResetToken(t *testing.T) {
	router, _, issuer := setup(t)
	token, _, err := issuer.Issue("u1", "Eva", "eva@sandgrund.se", model.RoleStaff)
	require.NoError(t, err)

	w := serve(router, http.MethodPost, "/api/v1/users/resetPassword", token, `{"email":"eva@sandgrund.se"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body httputil.ResetTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "raw-reset-token", body.ResetToken)
	assert.Equal(t, 200, body.StatusCode)
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	router, svc, issuer := setup(t)
	staff, _, err := issuer.Issue("u1", "Eva", "eva@sandgrund.se", model.RoleStaff)
	require.NoError(t, err)
	admin, _, err := issuer.Issue("u2", "Ola", "ola@sandgrund.se", model.RoleAdmin)
	require.NoError(t, err)

	w := serve(router, http.MethodDelete, "/api/v1/users/deleteUser/old@sandgrund.se", staff, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.deleted)

	w = serve(router, http.MethodDelete, "/api/v1/users/deleteUser/old@sandgrund.se", admin, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "old@sandgrund.se", svc.deleted)
}

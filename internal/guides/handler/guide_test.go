package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sandgrund/internal/guides/service"
	"sandgrund/pkg/auth"
	apperrors "sandgrund/pkg/errors"
	httputil "sandgrund/pkg/http"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/middleware"
	"sandgrund/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-test-secret-that-is-long-enough-for-hs256"

type mockGuideService struct {
	createFunc func(ctx context.Context, guide *model.Guide) error
	listFunc   func(ctx context.Context, query map[string]string) ([]model.Guide, error)
	updateFunc func(ctx context.Context, id string, update *model.GuideUpdate) (*model.Guide, error)
	deleteFunc func(ctx context.Context, id string) error
	uploadFunc func(ctx context.Context, id string, photo service.Photo) (*model.Guide, error)
}

func (m *mockGuideService) Create(ctx context.Context, guide *model.Guide) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, guide)
	}
	return nil
}

func (m *mockGuideService) List(ctx context.Context, query map[string]string) ([]model.Guide, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, query)
	}
	return []model.Guide{}, nil
}

func (m *mockGuideService) Update(ctx context.Context, id string, update *model.GuideUpdate) (*model.Guide, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, update)
	}
	return &model.Guide{ID: id}, nil
}

func (m *mockGuideService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockGuideService) UploadPhoto(ctx context.Context, id string, photo service.Photo) (*model.Guide, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, id, photo)
	}
	return &model.Guide{ID: id}, nil
}

func newRouter(t *testing.T, svc *mockGuideService) (*httprouter.Router, string) {
	t.Helper()
	log := logger.Discard()
	issuer := auth.NewIssuer(testSecret, time.Hour)
	token, _, err := issuer.Issue("u1", "Eva Lind", "eva@sandgrund.se", model.RoleStaff)
	require.NoError(t, err)

	router := httprouter.New()
	NewGuideHandler(svc, middleware.NewAuthenticator(issuer, nil, log), 1<<20, log).RegisterRoutes(router)
	return router, token
}

func send(router http.Handler, req *http.Request, token string) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) httputil.Envelope {
	t.Helper()
	var body httputil.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreate(t *testing.T) {
	router, token := newRouter(t, &mockGuideService{
		createFunc: func(ctx context.Context, guide *model.Guide) error {
			guide.ID = "g1"
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guides/createGuide", strings.NewReader(`{"fullName":"Anna","email":"anna@sandgrund.se"}`))
	w := send(router, req, token)

	require.Equal(t, http.StatusCreated, w.Code)
	body := envelope(t, w)
	assert.Equal(t, 201, body.StatusCode)
	assert.Equal(t, MsgGuideCreated, body.Message)
	assert.Equal(t, "g1", body.Data.(map[string]any)["_id"])
}

func TestCreate_PersistenceError(t *testing.T) {
	router, token := newRouter(t, &mockGuideService{
		createFunc: func(ctx context.Context, guide *model.Guide) error {
			return apperrors.BadRequest("E11000 duplicate key", nil)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guides/createGuide", strings.NewReader(`{"fullName":"Anna"}`))
	w := send(router, req, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E11000 duplicate key", envelope(t, w).Message)
}

func TestList(t *testing.T) {
	var gotQuery map[string]string
	router, token := newRouter(t, &mockGuideService{
		listFunc: func(ctx context.Context, query map[string]string) ([]model.Guide, error) {
			gotQuery = query
			return []model.Guide{{FullName: "Anna"}, {FullName: "Björn"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guides/getGuides?active=true", nil)
	w := send(router, req, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"active": "true"}, gotQuery)

	var body struct {
		Message string        `json:"message"`
		Count   int           `json:"count"`
		Guides  []model.Guide `json:"guides"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, MsgGuidesFetched, body.Message)
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Guides, 2)
}

func TestList_NotFound(t *testing.T) {
	router, token := newRouter(t, &mockGuideService{
		listFunc: func(ctx context.Context, query map[string]string) ([]model.Guide, error) {
			return nil, apperrors.NotFound(service.MsgNoGuideMatch)
		},
	})

	w := send(router, httptest.NewRequest(http.MethodGet, "/api/v1/guides/getGuides?email=x", nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.MsgNoGuideMatch, envelope(t, w).Message)
}

func TestUpdate(t *testing.T) {
	var gotID string
	router, token := newRouter(t, &mockGuideService{
		updateFunc: func(ctx context.Context, id string, update *model.GuideUpdate) (*model.Guide, error) {
			gotID = id
			return &model.Guide{ID: id, FullName: *update.FullName}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/guides/updateGuide/g9", strings.NewReader(`{"fullName":"New"}`))
	w := send(router, req, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g9", gotID)
	assert.Equal(t, MsgGuideUpdated, envelope(t, w).Message)
}

func TestUpdate_MissingID(t *testing.T) {
	router, token := newRouter(t, &mockGuideService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/guides/updateGuide", strings.NewReader(`{}`))
	w := send(router, req, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.MsgInvalidGuideID, envelope(t, w).Message)
}

func TestDelete(t *testing.T) {
	router, token := newRouter(t, &mockGuideService{
		deleteFunc: func(ctx context.Context, id string) error {
			if id == "" {
				return apperrors.InvalidInput(service.MsgInvalidGuideID)
			}
			return nil
		},
	})

	w := send(router, httptest.NewRequest(http.MethodDelete, "/api/v1/guides/deleteGuide/g1", nil), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MsgGuideDeleted, envelope(t, w).Message)

	w = send(router, httptest.NewRequest(http.MethodDelete, "/api/v1/guides/deleteGuide", nil), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgInvalidGuideID, envelope(t, w).Message)
}

func multipartRequest(t *testing.T, target, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(data))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	var got service.Photo
	var gotID string
	router, token := newRouter(t, &mockGuideService{
		uploadFunc: func(ctx context.Context, id string, photo service.Photo) (*model.Guide, error) {
			gotID, got = id, photo
			return &model.Guide{ID: id, Photo: photo.BaseURL + "/public/img/guides/1.png"}, nil
		},
	})

	for _, path := range []string{"/api/v1/users/uploadUserImage/g1", "/api/v1/guides/uploadImage/g1"} {
		t.Run(path, func(t *testing.T) {
			req := multipartRequest(t, "http://tours.local:8000"+path, "image", "me.png", []byte("\x89PNG fake"))
			w := send(router, req, token)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, MsgImageUploaded, envelope(t, w).Message)
			assert.Equal(t, "g1", gotID)
			assert.Equal(t, "me.png", got.Filename)
			assert.Equal(t, []byte("\x89PNG fake"), got.Data)
			assert.Equal(t, "http://tours.local:8000", got.BaseURL)
		})
	}
}

func TestUploadImage_Rejections(t *testing.T) {
	called := false
	router, token := newRouter(t, &mockGuideService{
		uploadFunc: func(ctx context.Context, id string, photo service.Photo) (*model.Guide, error) {
			called = true
			return nil, nil
		},
	})

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantMsg    string
	}{
		{"missing id", multipartRequest(t, "/api/v1/users/uploadUserImage", "image", "a.png", []byte("x")), http.StatusBadRequest, service.MsgNoGuideIDUpload},
		{"missing file", multipartRequest(t, "/api/v1/users/uploadUserImage/g1", "", "", nil), http.StatusBadRequest, service.MsgNotImage},
		{"wrong field", multipartRequest(t, "/api/v1/users/uploadUserImage/g1", "photo", "a.png", []byte("x")), http.StatusBadRequest, service.MsgNotImage},
		{"too large", multipartRequest(t, "/api/v1/users/uploadUserImage/g1", "image", "a.png", bytes.Repeat([]byte("x"), 1<<20+1)), http.StatusRequestEntityTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(router, tt.req, token)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, envelope(t, w).Message)
			}
		})
	}
	assert.False(t, called)
}

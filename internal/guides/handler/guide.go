package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"sandgrund/internal/guides/service"
	apperrors "sandgrund/pkg/errors"
	httputil "sandgrund/pkg/http"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/middleware"
	"sandgrund/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgGuideCreated  = "Guide successfully created."
	MsgGuidesFetched = "Guides successfully fetched"
	MsgGuideUpdated  = "Guide successfully updated"
	MsgGuideDeleted  = "Guide successfully deleted"
	MsgImageUploaded = "Image successfully uploaded"
	MsgInvalidBody   = "Invalid request body"

	imageField = "image"
)

type GuideHandler struct {
	service       service.GuideService
	auth          *middleware.Authenticator
	maxUploadSize int64
	log           *logger.Logger
}

func NewGuideHandler(service service.GuideService, auth *middleware.Authenticator, maxUploadSize int64, log *logger.Logger) *GuideHandler {
	return &GuideHandler{
		service:       service,
		auth:          auth,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (h *GuideHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var guide model.Guide
	if err := json.NewDecoder(r.Body).Decode(&guide); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput(MsgInvalidBody))
		return
	}

	if err := h.service.Create(r.Context(), &guide); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, MsgGuideCreated, guide); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *GuideHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	guides, err := h.service.List(r.Context(), httputil.QueryFields(r))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, httputil.GuidesResponse{
		StatusCode: http.StatusOK,
		Message:    MsgGuidesFetched,
		Count:      len(guides),
		Guides:     guides,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "List", "operation", "WriteJSON", "error", err)
	}
}

func (h *GuideHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		h.writeError(w, "Update", apperrors.NotFound(service.MsgInvalidGuideID))
		return
	}

	var update model.GuideUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Update", apperrors.WithStatus(apperrors.InvalidInput(MsgInvalidBody), http.StatusNotFound))
		return
	}

	guide, err := h.service.Update(r.Context(), id, &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, MsgGuideUpdated, guide); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *GuideHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, MsgGuideDeleted, nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

// UploadImage takes a single multipart file in the "image" field.
func (h *GuideHandler) UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		h.writeError(w, "UploadImage", apperrors.InvalidInput(service.MsgNoGuideIDUpload))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	file, header, err := r.FormFile(imageField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "UploadImage", h.tooLarge())
			return
		}
		h.writeError(w, "UploadImage", apperrors.InvalidInput(service.MsgNotImage))
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		h.writeError(w, "UploadImage", h.tooLarge())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		h.writeError(w, "UploadImage", apperrors.BadRequest("Failed to read upload", err))
		return
	}
	if int64(len(data)) > h.maxUploadSize {
		h.writeError(w, "UploadImage", h.tooLarge())
		return
	}

	guide, err := h.service.UploadPhoto(r.Context(), id, service.Photo{
		Filename: header.Filename,
		Data:     data,
		BaseURL:  httputil.BaseURL(r),
	})
	if err != nil {
		h.writeError(w, "UploadImage", err)
		return
	}

	if err := httputil.WriteSuccess(w, MsgImageUploaded, guide); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadImage", "operation", "WriteSuccess", "error", err)
	}
}

func (h *GuideHandler) tooLarge() error {
	return apperrors.TooLarge(fmt.Sprintf("Image too large, the limit is %d MB.", h.maxUploadSize>>20))
}

func (h *GuideHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *GuideHandler) RegisterRoutes(router *httprouter.Router) {
	protect := h.auth.Authenticate

	router.POST("/api/v1/guides/createGuide", protect(h.Create))
	router.GET("/api/v1/guides/getGuides", protect(h.List))
	router.PATCH("/api/v1/guides/updateGuide", protect(h.Update))
	router.PATCH("/api/v1/guides/updateGuide/:id", protect(h.Update))
	router.DELETE("/api/v1/guides/deleteGuide", protect(h.Delete))
	router.DELETE("/api/v1/guides/deleteGuide/:id", protect(h.Delete))

	router.POST("/api/v1/users/uploadUserImage", protect(h.UploadImage))
	router.POST("/api/v1/users/uploadUserImage/:id", protect(h.UploadImage))
	router.POST("/api/v1/guides/uploadImage", protect(h.UploadImage))
	router.POST("/api/v1/guides/uploadImage/:id", protect(h.UploadImage))
}

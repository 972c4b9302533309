package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"sandgrund/internal/tours/service"
	apperrors "sandgrund/pkg/errors"
	"sandgrund/pkg/filter"
	httputil "sandgrund/pkg/http"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/middleware"
	"sandgrund/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgBookingsFetched = "Bookings successfully fetched"
	MsgTourDocsFetched = "Tour documents successfully fetched"
	MsgBookingCreated  = "Booking successfully created."
	MsgBookingUpdated  = "Booking successfully updated"
	MsgBookingDeleted  = "Booking successfully deleted"
	MsgInvalidBody     = "Invalid request body"
)

type TourHandler struct {
	service service.TourService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewTourHandler(service service.TourService, auth *middleware.Authenticator, log *logger.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *TourHandler) BookingsByYear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	year, err := httputil.YearParam(r)
	if err != nil {
		h.writeError(w, "BookingsByYear", err)
		return
	}

	bookings, err := h.service.BookingsByYear(r.Context(), year)
	if err != nil {
		h.writeError(w, "BookingsByYear", err)
		return
	}

	h.writeBookings(w, "BookingsByYear", bookings)
}

func (h *TourHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	year, err := httputil.YearParam(r)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	criteria := filter.FromQuery(r.URL.Query(), "year")
	bookings, err := h.service.Search(r.Context(), year, criteria)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	h.writeBookings(w, "Search", bookings)
}

func (h *TourHandler) TourDocs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	docs, err := h.service.TourDocs(r.Context())
	if err != nil {
		h.writeError(w, "TourDocs", err)
		return
	}

	if err := httputil.WriteSuccess(w, MsgTourDocsFetched, docs); err != nil {
		h.log.Error("failed to write success response", "handler", "TourDocs", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput(MsgInvalidBody))
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, MsgBookingCreated, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput(MsgInvalidBody))
		return
	}

	booking, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, MsgBookingUpdated, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, MsgBookingDeleted, nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TourHandler) Overview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	year, err := httputil.YearParam(r)
	if err != nil {
		h.writeError(w, "Overview", err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.Overview(r.Context(), year, &buf); err != nil {
		h.writeError(w, "Overview", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=tours-%d.pdf", year))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Error("failed to write pdf response", "handler", "Overview", "operation", "Write", "error", err)
	}
}

func (h *TourHandler) writeBookings(w http.ResponseWriter, handler string, bookings []model.Booking) {
	if err := httputil.WriteJSON(w, http.StatusOK, httputil.BookingsResponse{
		StatusCode: http.StatusOK,
		Message:    MsgBookingsFetched,
		Result:     bookings,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteJSON", "error", err)
	}
}

func (h *TourHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *TourHandler) RegisterRoutes(router *httprouter.Router) {
	protect := h.auth.Authenticate

	router.GET("/api/v1/tours/bookings", protect(h.BookingsByYear))
	router.GET("/api/v1/tours/bookings/search", protect(h.Search))
	router.POST("/api/v1/tours/bookings", protect(h.Create))
	router.PATCH("/api/v1/tours/bookings/:id", protect(h.Update))
	router.DELETE("/api/v1/tours/bookings/:id", protect(h.Delete))
	router.GET("/api/v1/tours/tourDocs", protect(h.TourDocs))
	router.GET("/api/v1/tours/overview", protect(h.Overview))
}

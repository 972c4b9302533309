package handler

import (
	"encoding/json"
	"net/http"

	"sandgrund/internal/users/service"
	apperrors "sandgrund/pkg/errors"
	httputil "sandgrund/pkg/http"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/middleware"
	"sandgrund/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgSignedUp        = "User successfully created."
	MsgLoggedIn        = "Successfully logged in."
	MsgUsersFetched    = "Users successfully fetched"
	MsgLoggedOut       = "Successfully logged out."
	MsgResetTokenSent  = "Token sent to email!"
	MsgPasswordChanged = "Password successfully changed."
	MsgUserUpdated     = "User successfully updated"
	MsgUserDeleted     = "User successfully deleted"
	MsgInvalidBody     = "Invalid request body"
)

type UserHandler struct {
	service service.UserService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, auth *middleware.Authenticator, log *logger.Logger) *UserHandler {
	return &UserHandler{service: service, auth: auth, log: log}
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SignUpRequest
	if !h.decode(w, r, "SignUp", &req) {
		return
	}

	session, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		h.writeError(w, "SignUp", err)
		return
	}

	if err := httputil.WriteCreated(w, MsgSignedUp, session); err != nil {
		h.log.Error("failed to write created response", "handler", "SignUp", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) LogIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds model.Credentials
	if !h.decode(w, r, "LogIn", &creds) {
		return
	}

	session, err := h.service.LogIn(r.Context(), &creds)
	if err != nil {
		h.writeError(w, "LogIn", err)
		return
	}

	h.writeSuccess(w, "LogIn", MsgLoggedIn, session)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	h.writeSuccess(w, "List", MsgUsersFetched, users)
}

func (h *UserHandler) LogOut(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.LogOut(r.Context()); err != nil {
		h.writeError(w, "LogOut", err)
		return
	}

	h.writeSuccess(w, "LogOut", MsgLoggedOut, nil)
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ResetRequest
	if !h.decode(w, r, "ForgotPassword", &req) {
		return
	}

	token, err := h.service.ForgotPassword(r.Context(), &req)
	if err != nil {
		h.writeError(w, "ForgotPassword", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, httputil.ResetTokenResponse{
		StatusCode: http.StatusOK,
		Message:    MsgResetTokenSent,
		ResetToken: token,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ForgotPassword", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.NewPasswordRequest
	if !h.decode(w, r, "ResetPassword", &req) {
		return
	}

	session, err := h.service.ResetPassword(r.Context(), ps.ByName("token"), &req)
	if err != nil {
		h.writeError(w, "ResetPassword", err)
		return
	}

	h.writeSuccess(w, "ResetPassword", MsgPasswordChanged, session)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var update model.UserUpdate
	if !h.decode(w, r, "UpdateMe", &update) {
		return
	}

	user, err := h.service.UpdateMe(r.Context(), &update)
	if err != nil {
		h.writeError(w, "UpdateMe", err)
		return
	}

	h.writeSuccess(w, "UpdateMe", MsgUserUpdated, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteUser(r.Context(), ps.ByName("email")); err != nil {
		h.writeError(w, "DeleteUser", err)
		return
	}

	h.writeSuccess(w, "DeleteUser", MsgUserDeleted, nil)
}

func (h *UserHandler) decode(w http.ResponseWriter, r *http.Request, handler string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, handler, apperrors.InvalidInput(MsgInvalidBody))
		return false
	}
	return true
}

func (h *UserHandler) writeSuccess(w http.ResponseWriter, handler, message string, data any) {
	if err := httputil.WriteSuccess(w, message, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// RegisterRoutes keeps the public routes (signUp, logIn, list) ahead of the
// protected ones. The image upload route lives with the guides handler.
func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	protect := h.auth.Authenticate
	adminOnly := func(next httprouter.Handle) httprouter.Handle {
		return protect(h.auth.RestrictTo(model.RoleAdmin)(next))
	}

	router.POST("/api/v1/users/signUp", h.SignUp)
	router.POST("/api/v1/users/logIn", h.LogIn)
	router.GET("/api/v1/users/", h.List)

	router.POST("/api/v1/users/logOut", protect(h.LogOut))
	router.POST("/api/v1/users/resetPassword", protect(h.ForgotPassword))
	router.PATCH("/api/v1/users/resetPassword/:token", protect(h.ResetPassword))
	router.PATCH("/api/v1/users/updateMe", protect(h.UpdateMe))
	router.DELETE("/api/v1/users/deleteUser/:email", adminOnly(h.DeleteUser))
}

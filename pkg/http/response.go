package http

import (
	"encoding/json"
	"net/http"

	apperrors "sandgrund/pkg/errors"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

type BookingsResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Result     any    `json:"result"`
}

type GuidesResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Count      int    `json:"count"`
	Guides     any    `json:"guides"`
}

type ResetTokenResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

type ErrorResponse struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteEnvelope(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(w, statusCode, Envelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// WriteError renders any error as an envelope. Non AppErrors become a
// generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	status := appErr.StatusCode()

	return WriteJSON(w, status, ErrorResponse{
		StatusCode: status,
		Message:    appErr.Message,
		Code:       appErr.Code,
		Details:    appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, message string, data any) error {
	return WriteEnvelope(w, http.StatusOK, message, data)
}

func WriteCreated(w http.ResponseWriter, message string, data any) error {
	return WriteEnvelope(w, http.StatusCreated, message, data)
}


package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hrdesk/internal/domain/apperr"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError writes the response for a domain error. Unknown errors are logged and hidden behind a 500.
func FailError(w http.ResponseWriter, err error, requestID string) {
	var validation *apperr.ValidationError
	switch {
	case errors.As(err, &validation):
		FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed", map[string]any{"fields": validation.Issues}, requestID)
	case errors.Is(err, apperr.ErrValidation):
		Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, apperr.ErrInsufficientBalance):
		var insufficient *apperr.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			FailWithDetails(w, http.StatusUnprocessableEntity, "insufficient_balance", insufficient.Error(), map[string]any{
				"leaveType": insufficient.LeaveType,
				"available": insufficient.Available,
				"requested": insufficient.Requested,
			}, requestID)
			return
		}
		Fail(w, http.StatusUnprocessableEntity, "insufficient_balance", err.Error(), requestID)
	case errors.Is(err, apperr.ErrInvalidState):
		Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, apperr.ErrForbidden):
		Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	case errors.Is(err, apperr.ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, apperr.ErrDuplicateRecord):
		Fail(w, http.StatusConflict, "duplicate_record", err.Error(), requestID)
	case errors.Is(err, apperr.ErrPayloadTooLarge):
		Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), requestID)
	default:
		slog.Error("request failed", "requestId", requestID, "err", err)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

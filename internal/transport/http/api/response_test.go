package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/apperr"
)

type errorBody struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
	Error     struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func TestFailErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Invalid("reason", "is required"), http.StatusBadRequest, "validation_error"},
		{"bare validation", fmt.Errorf("month: %w", apperr.ErrValidation), http.StatusBadRequest, "validation_error"},
		{"insufficient", &apperr.InsufficientBalanceError{LeaveType: "casual", Available: 2, Requested: 5}, http.StatusUnprocessableEntity, "insufficient_balance"},
		{"state", fmt.Errorf("approve: %w", apperr.ErrInvalidState), http.StatusConflict, "invalid_state"},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", fmt.Errorf("salary record %w", apperr.ErrNotFound), http.StatusNotFound, "not_found"},
		{"duplicate", apperr.ErrDuplicateRecord, http.StatusConflict, "duplicate_record"},
		{"too large", fmt.Errorf("body: %w", apperr.ErrPayloadTooLarge), http.StatusRequestEntityTooLarge, "payload_too_large"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FailError(rec, tt.err, "req-1")

			assert.Equal(t, tt.status, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, "req-1", body.RequestID)
		})
	}
}

func TestFailErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	FailError(rec, errors.New("pq: password authentication failed"), "")

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error.Message)
}

func TestFailErrorValidationDetails(t *testing.T) {
	v := &apperr.ValidationError{}
	v.Add("startDate", "is required")
	v.Add("leaveType", "must be one of casual, sick, paid, unpaid")

	rec := httptest.NewRecorder()
	FailError(rec, v.Err(), "")

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	fields, ok := body.Error.Details["fields"].([]any)
	require.True(t, ok, "details: %v", body.Error.Details)
	require.Len(t, fields, 2)
	first := fields[0].(map[string]any)
	assert.Equal(t, "leaveType", first["field"])
}

func TestFailErrorInsufficientDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("submit: %w", &apperr.InsufficientBalanceError{LeaveType: "sick", Available: 1.5, Requested: 3})
	FailError(rec, err, "")

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sick", body.Error.Details["leaveType"])
	assert.Equal(t, 1.5, body.Error.Details["available"])
	assert.Equal(t, 3.0, body.Error.Details["requested"])
}

package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrdesk/internal/domain/apperr"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Reason string `json:"reason"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"reason":"trip"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"reason":"trip","extra":1}`, true},
		{"trailing object", `{"reason":"a"}{"reason":"b"}`, true},
		{"malformed", `{"reason":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var out payload
			err := DecodeJSON(req, &out)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil || out.Reason != "trip" {
				t.Fatalf("unexpected result: %+v %v", out, err)
			}
		})
	}
}

func TestOversizedBodyIsPayloadTooLarge(t *testing.T) {
	body := `{"reason":"` + strings.Repeat("x", 64) + `"}`
	limited := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, 16)
		return req
	}

	var out struct {
		Reason string `json:"reason"`
	}
	if err := DecodeJSON(limited(), &out); !errors.Is(err, apperr.ErrPayloadTooLarge) {
		t.Fatalf("DecodeJSON: expected payload too large, got %v", err)
	}
	if _, err := ReadBody(limited()); !errors.Is(err, apperr.ErrPayloadTooLarge) {
		t.Fatalf("ReadBody: expected payload too large, got %v", err)
	}

	raw, err := ReadBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if err != nil || string(raw) != body {
		t.Fatalf("ReadBody: unexpected result %q %v", raw, err)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4411"
	if got := ClientIP(req); got != "10.0.0.5" {
		t.Fatalf("expected remote host, got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected forwarded client, got %q", got)
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	v.Required("reason", " ", "is required")
	v.Enum("leaveType", "vacation", []string{"casual", "sick"}, "is not a leave type")
	v.Enum("status", "", []string{"pending"}, "ignored when empty")
	v.Date("startDate", "17/03/2025")
	v.UUID("id", "not-a-uuid")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "r1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var verr *apperr.ValidationError
	if !errors.As(v.Err(), &verr) || len(verr.Issues) != 4 {
		t.Fatalf("expected 4 issues, got %v", v.Err())
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=-2", nil)
	p := ParsePagination(req, 20, 100)
	if p.Limit != 100 || p.Offset != 0 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestParseDateKeepsCalendarDay(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"2025-03-10T23:30:00+05:00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"2025-03-10T01:00:00-08:00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseDate("10/03/2025"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

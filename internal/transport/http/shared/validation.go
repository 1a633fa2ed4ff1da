package shared

import (
	"net/http"
	"strings"
	"time"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/transport/http/api"
)

// Validator collects request-shape problems before a payload reaches a service.
type Validator struct {
	errs apperr.ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.errs.Add(strings.TrimSpace(field), reason)
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == strings.ToLower(strings.TrimSpace(candidate)) {
			return
		}
	}
	v.Add(field, reason)
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) UUID(field, raw string) {
	if !ValidID(raw) {
		v.Add(field, "must be a valid id")
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.errs.Issues) > 0
}

func (v *Validator) Err() error {
	if v == nil {
		return nil
	}
	return v.errs.Err()
}

// Reject writes a 400 with every collected issue and reports whether it did.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	err := v.Err()
	if err == nil {
		return false
	}
	api.FailError(w, err, requestID)
	return true
}

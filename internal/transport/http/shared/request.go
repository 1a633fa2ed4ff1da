package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"hrdesk/internal/domain/apperr"
)

// DecodeJSON reads a single JSON object from the body, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return tooLarge(maxErr)
		case errors.Is(err, io.EOF):
			return apperr.Invalid("body", "must not be empty")
		default:
			return apperr.Invalid("body", "must be a valid JSON object")
		}
	}
	if dec.More() {
		return apperr.Invalid("body", "must contain a single JSON object")
	}
	return nil
}

// ReadBody reads the whole body for callers that need the raw bytes, such as idempotency hashing.
func ReadBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(maxErr)
		}
		return nil, apperr.Invalid("body", "could not be read")
	}
	return raw, nil
}

func tooLarge(maxErr *http.MaxBytesError) error {
	return fmt.Errorf("request body must not exceed %d bytes: %w", maxErr.Limit, apperr.ErrPayloadTooLarge)
}

func ClientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func ValidID(raw string) bool {
	_, err := uuid.Parse(strings.TrimSpace(raw))
	return err == nil
}

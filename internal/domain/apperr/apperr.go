// Package apperr holds the error categories shared by the domain packages.
// Domain packages wrap these with their own sentinels; the transport maps them to responses.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidState        = errors.New("invalid state")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateRecord     = errors.New("duplicate record")
	ErrPayloadTooLarge     = errors.New("payload too large")
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every field problem found in one input.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add records an issue; a nil receiver is not allowed.
func (e *ValidationError) Add(field, reason string) {
	e.Issues = append(e.Issues, Issue{Field: field, Reason: reason})
}

// Err returns nil when no issue was recorded, so callers can `return v.Err()`.
func (e *ValidationError) Err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	sort.SliceStable(e.Issues, func(i, j int) bool { return e.Issues[i].Field < e.Issues[j].Field })
	return e
}

func Invalid(field, reason string) error {
	return &ValidationError{Issues: []Issue{{Field: field, Reason: reason}}}
}

type InsufficientBalanceError struct {
	LeaveType string
	Available float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s leave balance: %g days available, %g requested", e.LeaveType, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

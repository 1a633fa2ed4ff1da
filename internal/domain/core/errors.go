package core

import (
	"fmt"

	"hrdesk/internal/domain/apperr"
)

var (
	ErrEmployeeNotFound = fmt.Errorf("employee %w", apperr.ErrNotFound)
	ErrEmployeeExists   = fmt.Errorf("employee code or email already in use: %w", apperr.ErrDuplicateRecord)
)

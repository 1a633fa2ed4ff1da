package leave

import (
	"fmt"

	"hrdesk/internal/domain/apperr"
)

var (
	ErrRequestNotFound  = fmt.Errorf("leave request %w", apperr.ErrNotFound)
	ErrEmployeeNotFound = fmt.Errorf("employee %w", apperr.ErrNotFound)
	ErrNotPending       = fmt.Errorf("leave request is not pending: %w", apperr.ErrInvalidState)
	ErrAlreadySigned    = fmt.Errorf("manager has already approved this request: %w", apperr.ErrInvalidState)
	ErrNotDirectManager = fmt.Errorf("only the employee's direct manager may act on this request: %w", apperr.ErrForbidden)
	ErrNotRequester     = fmt.Errorf("only the requesting employee may cancel: %w", apperr.ErrForbidden)
	ErrCannotApprove    = fmt.Errorf("role cannot approve leave: %w", apperr.ErrForbidden)
	ErrSelfApproval     = fmt.Errorf("requesters cannot decide their own leave: %w", apperr.ErrForbidden)
	ErrNoEmployee       = fmt.Errorf("account has no employee record: %w", apperr.ErrForbidden)
	ErrLedgerAdminOnly  = fmt.Errorf("only hr or admin may reconcile balances: %w", apperr.ErrForbidden)
	ErrOutOfScope       = fmt.Errorf("leave request is outside your scope: %w", apperr.ErrForbidden)
)

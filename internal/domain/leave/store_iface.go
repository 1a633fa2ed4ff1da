package leave

import (
	"context"

	"hrdesk/internal/domain/core"
	"hrdesk/internal/domain/notifications"
)

// Repository is the persistence the leave service runs on.
type Repository interface {
	WithinTx(ctx context.Context, fn func(tx TxRepository) error) error
	GetRequest(ctx context.Context, id string) (LeaveRequest, error)
	ListRequests(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, int, error)
	CountPending(ctx context.Context, scope Scope) (int, error)
	ApprovedDays(ctx context.Context, employeeID string) (core.LeaveBalance, error)
	Ledger(ctx context.Context, employeeID string) (core.Ledger, map[string]bool, error)
	Employee(ctx context.Context, employeeID string) (EmployeeRef, error)
}

// TxRepository is the transactional view handed to WithinTx callbacks.
type TxRepository interface {
	Employee(ctx context.Context, employeeID string) (EmployeeRef, error)
	EmployeeIDsByRole(ctx context.Context, roles ...string) ([]string, error)
	Ledger(ctx context.Context, employeeID string) (core.Ledger, map[string]bool, error)
	// LockLedger serializes filings for one employee and leave type.
	LockLedger(ctx context.Context, employeeID, leaveType string) error
	ApprovedDaysOfType(ctx context.Context, employeeID, leaveType string) (float64, error)
	InsertRequest(ctx context.Context, req *LeaveRequest) error
	// LockRequest loads the request and holds its row until commit.
	LockRequest(ctx context.Context, id string) (LeaveRequest, error)
	UpdateRequest(ctx context.Context, req LeaveRequest) error
	// Deduct applies the clamped deduction; grant seeds a missing ledger row.
	Deduct(ctx context.Context, employeeID, leaveType string, days, grant float64) (float64, error)
	SetLedgerEntry(ctx context.Context, employeeID, leaveType string, granted, remaining float64) error
	Notify(ctx context.Context, msg notifications.Message) error
}

// Deliverer sends already committed notifications, best effort.
type Deliverer interface {
	Deliver(ctx context.Context, msgs ...notifications.Message)
}

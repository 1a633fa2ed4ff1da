package core

import "time"

const (
	LeaveCasual = "casual"
	LeaveSick   = "sick"
	LeavePaid   = "paid"
)

// BalanceTypes are the leave types that carry a ledger row.
var BalanceTypes = []string{LeaveCasual, LeaveSick, LeavePaid}

type Employee struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	EmployeeCode string    `json:"employeeCode"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role,omitempty"`
	ManagerID    string    `json:"managerId,omitempty"`
	Department   string    `json:"department"`
	Designation  string    `json:"designation"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LeaveBalance holds one figure per ledger-backed leave type.
type LeaveBalance struct {
	Casual float64 `json:"casual"`
	Sick   float64 `json:"sick"`
	Paid   float64 `json:"paid"`
}

func (b LeaveBalance) Get(leaveType string) float64 {
	switch leaveType {
	case LeaveCasual:
		return b.Casual
	case LeaveSick:
		return b.Sick
	case LeavePaid:
		return b.Paid
	}
	return 0
}

func (b *LeaveBalance) Set(leaveType string, days float64) {
	switch leaveType {
	case LeaveCasual:
		b.Casual = days
	case LeaveSick:
		b.Sick = days
	case LeavePaid:
		b.Paid = days
	}
}

// Ledger pairs the entitlement for the period with what remains of it.
type Ledger struct {
	Granted   LeaveBalance `json:"granted"`
	Remaining LeaveBalance `json:"remaining"`
}

type EmployeeFilter struct {
	Department string
	ManagerID  string
	Search     string
}

type OnboardInput struct {
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	ManagerID    string `json:"managerId"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
}

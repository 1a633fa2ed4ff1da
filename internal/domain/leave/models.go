package leave

import (
	"time"

	"hrdesk/internal/domain/core"
)

// Actor is the authenticated caller acting on leave data.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type LeaveRequest struct {
	ID                string            `json:"id"`
	EmployeeID        string            `json:"employeeId"`
	EmployeeName      string            `json:"employeeName,omitempty"`
	LeaveType         string            `json:"leaveType"`
	StartDate         time.Time         `json:"startDate"`
	EndDate           time.Time         `json:"endDate"`
	TotalDays         float64           `json:"totalDays"`
	Reason            string            `json:"reason"`
	Stage             Stage             `json:"stage"`
	Status            string            `json:"status"`
	ManagerApproverID string            `json:"managerApproverId,omitempty"`
	HRApproverID      string            `json:"hrApproverId,omitempty"`
	ApprovedAt        *time.Time        `json:"approvedAt,omitempty"`
	RejectionReason   string            `json:"rejectionReason,omitempty"`
	BalanceSnapshot   core.LeaveBalance `json:"balanceSnapshot"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// EmployeeRef is the slice of the directory the state machine needs.
type EmployeeRef struct {
	ID        string
	Name      string
	ManagerID string
}

type SubmitInput struct {
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

type ListFilter struct {
	Status    string
	LeaveType string
	Stage     Stage
	Limit     int
	Offset    int
}

type RequestList struct {
	Items []LeaveRequest `json:"items"`
	Total int            `json:"total"`
}

type Dashboard struct {
	Balance        core.LeaveBalance `json:"balance"`
	RecentRequests []LeaveRequest    `json:"recentRequests"`
	PendingCount   int               `json:"pendingCount"`
}

// Scope restricts a read to the caller's own requests, a manager's team, or everything.
type Scope struct {
	All    bool
	SelfID string
	TeamOf string
}

func (s Scope) Includes(employeeID, managerID string) bool {
	if s.All {
		return true
	}
	if s.SelfID != "" && employeeID == s.SelfID {
		return true
	}
	return s.TeamOf != "" && managerID == s.TeamOf
}

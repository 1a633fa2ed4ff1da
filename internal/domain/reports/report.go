package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/payroll"
)

// LeaveFilter narrows the leave report. Zero values leave a dimension open.
type LeaveFilter struct {
	EmployeeID string
	LeaveType  string
	From       time.Time
	To         time.Time
}

type LeaveReport struct {
	Total        int                `json:"total"`
	ByStatus     map[string]int     `json:"byStatus"`
	ApprovedDays map[string]float64 `json:"approvedDays"`
}

type PayrollFilter struct {
	EmployeeCode string
	MonthNumber  int
	Year         int
}

type PayrollReport struct {
	Records    int             `json:"records"`
	TotalGross decimal.Decimal `json:"totalGross"`
	TotalNet   decimal.Decimal `json:"totalNet"`
	ByStatus   map[string]int  `json:"byStatus"`
}

// leaveGroup is one (status, type) bucket of leave_requests.
type leaveGroup struct {
	Status    string
	LeaveType string
	Count     int
	Days      float64
}

type payrollGroup struct {
	Status string
	Count  int
	Gross  decimal.Decimal
	Net    decimal.Decimal
}

func tallyLeave(groups []leaveGroup) LeaveReport {
	out := LeaveReport{
		ByStatus:     make(map[string]int, len(leave.Statuses)),
		ApprovedDays: make(map[string]float64, len(leave.Types)),
	}
	for _, status := range leave.Statuses {
		out.ByStatus[status] = 0
	}
	for _, leaveType := range leave.Types {
		out.ApprovedDays[leaveType] = 0
	}
	for _, g := range groups {
		out.Total += g.Count
		out.ByStatus[g.Status] += g.Count
		if g.Status == leave.StatusApproved {
			out.ApprovedDays[g.LeaveType] += g.Days
		}
	}
	return out
}

func tallyPayroll(groups []payrollGroup) PayrollReport {
	out := PayrollReport{
		TotalGross: decimal.Zero,
		TotalNet:   decimal.Zero,
		ByStatus:   make(map[string]int, len(payroll.Statuses)),
	}
	for _, status := range payroll.Statuses {
		out.ByStatus[status] = 0
	}
	for _, g := range groups {
		out.Records += g.Count
		out.ByStatus[g.Status] += g.Count
		out.TotalGross = out.TotalGross.Add(g.Gross)
		out.TotalNet = out.TotalNet.Add(g.Net)
	}
	return out
}

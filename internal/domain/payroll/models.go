package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Components are the static pay figures entered by HR.
type Components struct {
	Basic           decimal.Decimal `json:"basic"`
	HRA             decimal.Decimal `json:"hra"`
	DA              decimal.Decimal `json:"da"`
	Allowances      decimal.Decimal `json:"allowances"`
	PF              decimal.Decimal `json:"pf"`
	Tax             decimal.Decimal `json:"tax"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`
}

type SalaryRecord struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employeeCode"`
	EmployeeName string `json:"employeeName,omitempty"`
	Month        string `json:"month"`
	MonthNumber  int    `json:"monthNumber"`
	Year         int    `json:"year"`
	Components
	LeaveDays      decimal.Decimal `json:"leaveDays"`
	LeaveDeduction decimal.Decimal `json:"leaveDeduction"`
	GrossSalary    decimal.Decimal `json:"grossSalary"`
	NetSalary      decimal.Decimal `json:"netSalary"`
	Status         string          `json:"status"`
	PayslipKey     string          `json:"-"`
	HasPayslip     bool            `json:"hasPayslip"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type Employee struct {
	ID          string
	Code        string
	Name        string
	Email       string
	Department  string
	Designation string
}

// LeaveInterval is one approved unpaid leave, both ends inclusive.
type LeaveInterval struct {
	Start time.Time
	End   time.Time
}

type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type CreateInput struct {
	EmployeeCode string `json:"employeeCode"`
	Month        string `json:"month"`
	Year         int    `json:"year"`
	Components
}

// UpdateInput is a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Basic           *decimal.Decimal `json:"basic"`
	HRA             *decimal.Decimal `json:"hra"`
	DA              *decimal.Decimal `json:"da"`
	Allowances      *decimal.Decimal `json:"allowances"`
	PF              *decimal.Decimal `json:"pf"`
	Tax             *decimal.Decimal `json:"tax"`
	OtherDeductions *decimal.Decimal `json:"otherDeductions"`
	Status          *string          `json:"status"`
}

type ListFilter struct {
	MonthNumber  int
	Year         int
	EmployeeCode string
	Status       string
	Limit        int
	Offset       int
}

type RecordList struct {
	Items []SalaryRecord `json:"items"`
	Total int            `json:"total"`
}

type Payslip struct {
	FileName string
	Content  []byte
}

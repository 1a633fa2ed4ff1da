package payroll

import (
	"context"
	"time"
)

//go:generate mockgen -source=store_iface.go -destination=repository_mock.go -package=payroll

// Repository is the persistence the payroll service runs on.
type Repository interface {
	EmployeeByCode(ctx context.Context, code string) (Employee, error)
	EmployeeByID(ctx context.Context, id string) (Employee, error)
	// ApprovedUnpaidLeave returns approved unpaid requests of the employee touching [from, to].
	ApprovedUnpaidLeave(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveInterval, error)
	CreateRecord(ctx context.Context, rec *SalaryRecord) error
	GetRecord(ctx context.Context, id string) (SalaryRecord, error)
	ListRecords(ctx context.Context, filter ListFilter) ([]SalaryRecord, int, error)
	// ModifyRecord locks the record, lets apply change it and saves the result in one transaction.
	// An error from apply aborts without writing.
	ModifyRecord(ctx context.Context, id string, apply func(rec *SalaryRecord) error) (SalaryRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	SetPayslip(ctx context.Context, id, key, status string) error
}

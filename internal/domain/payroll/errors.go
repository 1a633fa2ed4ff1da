package payroll

import (
	"fmt"

	"hrdesk/internal/domain/apperr"
)

var (
	ErrSalaryNotFound      = fmt.Errorf("salary record %w", apperr.ErrNotFound)
	ErrEmployeeNotFound    = fmt.Errorf("employee %w", apperr.ErrNotFound)
	ErrPayslipNotGenerated = fmt.Errorf("payslip not generated yet: %w", apperr.ErrNotFound)
	ErrDuplicateSalary     = fmt.Errorf("salary for this month already exists: %w", apperr.ErrDuplicateRecord)
	ErrStatusRegression    = fmt.Errorf("salary status cannot move backwards: %w", apperr.ErrInvalidState)
	ErrPayrollAdminOnly    = fmt.Errorf("role cannot manage salary records: %w", apperr.ErrForbidden)
	ErrOutOfScope          = fmt.Errorf("salary record belongs to another employee: %w", apperr.ErrForbidden)
)

package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/domain/leave"
	"hrdesk/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const recordColumns = `
    sr.id, sr.employee_code, COALESCE(e.name, ''), sr.month, sr.month_number, sr.year,
    sr.basic, sr.hra, sr.da, sr.allowances, sr.pf, sr.tax, sr.other_deductions,
    sr.leave_days, sr.leave_deduction, sr.gross_salary, sr.net_salary,
    sr.status, sr.payslip_key, sr.created_at, sr.updated_at`

const recordFrom = `
    FROM salary_records sr
    LEFT JOIN employees e ON e.employee_code = sr.employee_code`

func scanRecord(row pgx.Row) (SalaryRecord, error) {
	var rec SalaryRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeCode, &rec.EmployeeName, &rec.Month, &rec.MonthNumber, &rec.Year,
		&rec.Basic, &rec.HRA, &rec.DA, &rec.Allowances, &rec.PF, &rec.Tax, &rec.OtherDeductions,
		&rec.LeaveDays, &rec.LeaveDeduction, &rec.GrossSalary, &rec.NetSalary,
		&rec.Status, &rec.PayslipKey, &rec.CreatedAt, &rec.UpdatedAt,
	)
	rec.HasPayslip = rec.PayslipKey != ""
	return rec, err
}

func (s *Store) EmployeeByCode(ctx context.Context, code string) (Employee, error) {
	return s.employee(ctx, "employee_code", code)
}

func (s *Store) EmployeeByID(ctx context.Context, id string) (Employee, error) {
	return s.employee(ctx, "id::text", id)
}

func (s *Store) employee(ctx context.Context, column, value string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_code, name, email, department, designation
    FROM employees
    WHERE `+column+` = $1
  `, value).Scan(&emp.ID, &emp.Code, &emp.Name, &emp.Email, &emp.Department, &emp.Designation)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) ApprovedUnpaidLeave(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveInterval, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT start_date, end_date
    FROM leave_requests
    WHERE employee_id = $1 AND leave_type = $2 AND status = $3
      AND start_date <= $5 AND end_date >= $4
    ORDER BY start_date
  `, employeeID, leave.TypeUnpaid, leave.StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaveInterval
	for rows.Next() {
		var iv LeaveInterval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func (s *Store) CreateRecord(ctx context.Context, rec *SalaryRecord) error {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salary_records (
      employee_code, month, month_number, year,
      basic, hra, da, allowances, pf, tax, other_deductions,
      leave_days, leave_deduction, gross_salary, net_salary, status
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    RETURNING id, created_at, updated_at
  `, rec.EmployeeCode, rec.Month, rec.MonthNumber, rec.Year,
		rec.Basic, rec.HRA, rec.DA, rec.Allowances, rec.PF, rec.Tax, rec.OtherDeductions,
		rec.LeaveDays, rec.LeaveDeduction, rec.GrossSalary, rec.NetSalary, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrDuplicateSalary
	}
	return err
}

func (s *Store) GetRecord(ctx context.Context, id string) (SalaryRecord, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, "SELECT"+recordColumns+recordFrom+" WHERE sr.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryRecord{}, ErrSalaryNotFound
	}
	return rec, err
}

func (s *Store) ListRecords(ctx context.Context, filter ListFilter) ([]SalaryRecord, int, error) {
	where := " WHERE 1=1"
	var args []any
	if filter.MonthNumber != 0 {
		args = append(args, filter.MonthNumber)
		where += fmt.Sprintf(" AND sr.month_number = $%d", len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(" AND sr.year = $%d", len(args))
	}
	if filter.EmployeeCode != "" {
		args = append(args, filter.EmployeeCode)
		where += fmt.Sprintf(" AND sr.employee_code = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND sr.status = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM salary_records sr"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := "SELECT" + recordColumns + recordFrom + where +
		fmt.Sprintf(" ORDER BY sr.year DESC, sr.month_number DESC, sr.employee_code LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []SalaryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

func (s *Store) ModifyRecord(ctx context.Context, id string, apply func(rec *SalaryRecord) error) (SalaryRecord, error) {
	var rec SalaryRecord
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var err error
		rec, err = scanRecord(tx.QueryRow(ctx, "SELECT"+recordColumns+recordFrom+" WHERE sr.id = $1 FOR UPDATE OF sr", id))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSalaryNotFound
		}
		if err != nil {
			return err
		}
		if err := apply(&rec); err != nil {
			return err
		}
		return updateRecord(ctx, tx, rec)
	})
	if err != nil {
		return SalaryRecord{}, err
	}
	return rec, nil
}

func updateRecord(ctx context.Context, q db.Querier, rec SalaryRecord) error {
	tag, err := q.Exec(ctx, `
    UPDATE salary_records
    SET basic = $2, hra = $3, da = $4, allowances = $5, pf = $6, tax = $7, other_deductions = $8,
        gross_salary = $9, net_salary = $10, status = $11, updated_at = $12
    WHERE id = $1
  `, rec.ID, rec.Basic, rec.HRA, rec.DA, rec.Allowances, rec.PF, rec.Tax, rec.OtherDeductions,
		rec.GrossSalary, rec.NetSalary, rec.Status, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSalaryNotFound
	}
	return nil
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM salary_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSalaryNotFound
	}
	return nil
}

func (s *Store) SetPayslip(ctx context.Context, id, key, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE salary_records
    SET payslip_key = $2, status = $3, updated_at = now()
    WHERE id = $1
  `, id, key, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSalaryNotFound
	}
	return nil
}

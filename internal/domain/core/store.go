package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const employeeColumns = `
    e.id, COALESCE(e.user_id::text, ''), e.employee_code, e.name, e.email, COALESCE(u.role, ''),
    COALESCE(e.manager_id::text, ''), e.department, e.designation, e.created_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	err := row.Scan(&emp.ID, &emp.UserID, &emp.EmployeeCode, &emp.Name, &emp.Email, &emp.Role,
		&emp.ManagerID, &emp.Department, &emp.Designation, &emp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees e
    LEFT JOIN users u ON u.id = e.user_id
    WHERE e.id = $1
  `, employeeID))
}

func (s *Store) GetEmployeeByCode(ctx context.Context, code string) (*Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees e
    LEFT JOIN users u ON u.id = e.user_id
    WHERE e.employee_code = $1
  `, code))
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter, limit, offset int) ([]Employee, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where += fmt.Sprintf(" AND e.department = $%d", len(args))
	}
	if filter.ManagerID != "" {
		args = append(args, filter.ManagerID)
		where += fmt.Sprintf(" AND e.manager_id = $%d", len(args))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND (e.name ILIKE $%d OR e.email ILIKE $%d OR e.employee_code ILIKE $%d)", len(args), len(args), len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees e"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + employeeColumns + " FROM employees e LEFT JOIN users u ON u.id = e.user_id" + where + " ORDER BY e.name"
	args = append(args, limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *emp)
	}
	return out, total, rows.Err()
}

func (s *Store) TeamMembers(ctx context.Context, managerID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees e
    LEFT JOIN users u ON u.id = e.user_id
    WHERE e.manager_id = $1
    ORDER BY e.name
  `, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

// EmployeeIDsByRole returns employee ids whose login carries one of roles.
func (s *Store) EmployeeIDsByRole(ctx context.Context, roles ...string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id
    FROM employees e
    JOIN users u ON u.id = e.user_id
    WHERE u.role = ANY($1) AND u.status = 'active'
  `, roles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// LedgerRows returns the stored ledger; ok is false for types without a row.
func (s *Store) LedgerRows(ctx context.Context, q db.Querier, employeeID string) (Ledger, map[string]bool, error) {
	rows, err := q.Query(ctx, `
    SELECT leave_type, granted::float8, balance::float8
    FROM leave_balances
    WHERE employee_id = $1
  `, employeeID)
	if err != nil {
		return Ledger{}, nil, err
	}
	defer rows.Close()

	var out Ledger
	present := map[string]bool{}
	for rows.Next() {
		var leaveType string
		var granted, balance float64
		if err := rows.Scan(&leaveType, &granted, &balance); err != nil {
			return Ledger{}, nil, err
		}
		out.Granted.Set(leaveType, granted)
		out.Remaining.Set(leaveType, balance)
		present[leaveType] = true
	}
	return out, present, rows.Err()
}

func (s *Store) UpsertLedger(ctx context.Context, q db.Querier, employeeID string, ledger Ledger) error {
	for _, leaveType := range BalanceTypes {
		if _, err := q.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, leave_type, granted, balance)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (employee_id, leave_type)
    DO UPDATE SET granted = EXCLUDED.granted, balance = EXCLUDED.balance, updated_at = now()
  `, employeeID, leaveType, ledger.Granted.Get(leaveType), ledger.Remaining.Get(leaveType)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateEmployeeWithUser(ctx context.Context, in OnboardInput, passwordHash string, grants LeaveBalance) (string, error) {
	var employeeID string
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var userID string
		if err := tx.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id
  `, in.Email, passwordHash, in.Role).Scan(&userID); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `
    INSERT INTO employees (user_id, employee_code, name, email, manager_id, department, designation)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id
  `, userID, in.EmployeeCode, in.Name, in.Email, nullIfEmpty(in.ManagerID), in.Department, in.Designation).Scan(&employeeID); err != nil {
			return err
		}
		return s.UpsertLedger(ctx, tx, employeeID, Ledger{Granted: grants, Remaining: grants})
	})
	if db.IsUniqueViolation(err) {
		return "", ErrEmployeeExists
	}
	return employeeID, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

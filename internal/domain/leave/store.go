package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/domain/core"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/platform/db"
)

type Store struct {
	DB            *pgxpool.Pool
	Directory     *core.Store
	Notifications *notifications.Store
}

func NewStore(pool *pgxpool.Pool, directory *core.Store, notes *notifications.Store) *Store {
	return &Store{DB: pool, Directory: directory, Notifications: notes}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		return fn(&txStore{q: tx, parent: s})
	})
}

func (s *Store) GetRequest(ctx context.Context, id string) (LeaveRequest, error) {
	return getRequest(ctx, s.DB, id, false)
}

func (s *Store) Employee(ctx context.Context, employeeID string) (EmployeeRef, error) {
	return employeeRef(ctx, s.DB, employeeID)
}

func (s *Store) Ledger(ctx context.Context, employeeID string) (core.Ledger, map[string]bool, error) {
	return s.Directory.LedgerRows(ctx, s.DB, employeeID)
}

func (s *Store) ApprovedDays(ctx context.Context, employeeID string) (core.LeaveBalance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT leave_type, COALESCE(SUM(total_days), 0)::float8
    FROM leave_requests
    WHERE employee_id = $1 AND status = $2
    GROUP BY leave_type
  `, employeeID, StatusApproved)
	if err != nil {
		return core.LeaveBalance{}, err
	}
	defer rows.Close()

	var out core.LeaveBalance
	for rows.Next() {
		var leaveType string
		var days float64
		if err := rows.Scan(&leaveType, &days); err != nil {
			return core.LeaveBalance{}, err
		}
		out.Set(leaveType, days)
	}
	return out, rows.Err()
}

func (s *Store) ListRequests(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, int, error) {
	where, args := ScopeClause(scope, nil)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}
	if filter.LeaveType != "" {
		args = append(args, filter.LeaveType)
		where += fmt.Sprintf(" AND lr.leave_type = $%d", len(args))
	}
	if filter.Stage != "" {
		args = append(args, string(filter.Stage))
		where += fmt.Sprintf(" AND lr.stage = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests lr"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
    SELECT` + requestColumns + `
    FROM leave_requests lr
    JOIN employees e ON e.id = lr.employee_id` + where + `
    ORDER BY lr.created_at DESC`
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, req)
	}
	return out, total, rows.Err()
}

func (s *Store) CountPending(ctx context.Context, scope Scope) (int, error) {
	where, args := ScopeClause(scope, nil)
	args = append(args, StatusPending)
	where += fmt.Sprintf(" AND lr.status = $%d", len(args))
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests lr"+where, args...).Scan(&count)
	return count, err
}

type txStore struct {
	q      pgx.Tx
	parent *Store
}

func (t *txStore) Employee(ctx context.Context, employeeID string) (EmployeeRef, error) {
	return employeeRef(ctx, t.q, employeeID)
}

func (t *txStore) EmployeeIDsByRole(ctx context.Context, roles ...string) ([]string, error) {
	rows, err := t.q.Query(ctx, `
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

func (t *txStore) Ledger(ctx context.Context, employeeID string) (core.Ledger, map[string]bool, error) {
	return t.parent.Directory.LedgerRows(ctx, t.q, employeeID)
}

func (t *txStore) LockLedger(ctx context.Context, employeeID, leaveType string) error {
	var one int
	err := t.q.QueryRow(ctx, `
    SELECT 1 FROM leave_balances
    WHERE employee_id = $1 AND leave_type = $2
    FOR UPDATE
  `, employeeID, leaveType).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func (t *txStore) ApprovedDaysOfType(ctx context.Context, employeeID, leaveType string) (float64, error) {
	var days float64
	err := t.q.QueryRow(ctx, `
    SELECT COALESCE(SUM(total_days), 0)::float8
    FROM leave_requests
    WHERE employee_id = $1 AND leave_type = $2 AND status = $3
  `, employeeID, leaveType, StatusApproved).Scan(&days)
	return days, err
}

func (t *txStore) InsertRequest(ctx context.Context, req *LeaveRequest) error {
	snapshot, err := json.Marshal(req.BalanceSnapshot)
	if err != nil {
		return err
	}
	return t.q.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, total_days, reason, stage, balance_snapshot)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id, status, created_at, updated_at
  `, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.TotalDays, req.Reason, string(req.Stage), snapshot,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

func (t *txStore) LockRequest(ctx context.Context, id string) (LeaveRequest, error) {
	return getRequest(ctx, t.q, id, true)
}

func (t *txStore) UpdateRequest(ctx context.Context, req LeaveRequest) error {
	_, err := t.q.Exec(ctx, `
    UPDATE leave_requests
    SET stage = $1,
        manager_approver_id = $2,
        hr_approver_id = $3,
        approved_at = $4,
        rejection_reason = $5,
        updated_at = now()
    WHERE id = $6
  `, string(req.Stage), nullIfEmpty(req.ManagerApproverID), nullIfEmpty(req.HRApproverID), req.ApprovedAt, req.RejectionReason, req.ID)
	return err
}

func (t *txStore) Deduct(ctx context.Context, employeeID, leaveType string, days, grant float64) (float64, error) {
	var remaining float64
	err := t.q.QueryRow(ctx, `
    UPDATE leave_balances
    SET balance = GREATEST(0, balance - $3), updated_at = now()
    WHERE employee_id = $1 AND leave_type = $2
    RETURNING balance::float8
  `, employeeID, leaveType, days).Scan(&remaining)
	if !errors.Is(err, pgx.ErrNoRows) {
		return remaining, err
	}
	err = t.q.QueryRow(ctx, `
    INSERT INTO leave_balances (employee_id, leave_type, granted, balance)
    VALUES ($1, $2, $3::numeric, GREATEST(0, $3::numeric - $4::numeric))
    RETURNING balance::float8
  `, employeeID, leaveType, grant, days).Scan(&remaining)
	return remaining, err
}

func (t *txStore) SetLedgerEntry(ctx context.Context, employeeID, leaveType string, granted, remaining float64) error {
	_, err := t.q.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, leave_type, granted, balance)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (employee_id, leave_type)
    DO UPDATE SET granted = EXCLUDED.granted, balance = EXCLUDED.balance, updated_at = now()
  `, employeeID, leaveType, granted, remaining)
	return err
}

func (t *txStore) Notify(ctx context.Context, msg notifications.Message) error {
	_, err := t.parent.Notifications.Insert(ctx, t.q, msg)
	return err
}

const requestColumns = `
    lr.id, lr.employee_id, e.name, lr.leave_type, lr.start_date, lr.end_date, lr.total_days::float8, lr.reason,
    lr.stage, lr.status, COALESCE(lr.manager_approver_id::text, ''), COALESCE(lr.hr_approver_id::text, ''),
    lr.approved_at, lr.rejection_reason, lr.balance_snapshot, lr.created_at, lr.updated_at`

func getRequest(ctx context.Context, q db.Querier, id string, lock bool) (LeaveRequest, error) {
	query := `
    SELECT` + requestColumns + `
    FROM leave_requests lr
    JOIN employees e ON e.id = lr.employee_id
    WHERE lr.id = $1`
	if lock {
		query += " FOR UPDATE OF lr"
	}
	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, ErrRequestNotFound
	}
	return req, err
}

func scanRequest(row pgx.Row) (LeaveRequest, error) {
	var req LeaveRequest
	var stage string
	var snapshot []byte
	var approvedAt *time.Time
	if err := row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName, &req.LeaveType, &req.StartDate, &req.EndDate, &req.TotalDays, &req.Reason,
		&stage, &req.Status, &req.ManagerApproverID, &req.HRApproverID,
		&approvedAt, &req.RejectionReason, &snapshot, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return LeaveRequest{}, err
	}
	req.Stage = Stage(stage)
	req.ApprovedAt = approvedAt
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &req.BalanceSnapshot); err != nil {
			return LeaveRequest{}, err
		}
	}
	return req, nil
}

func employeeRef(ctx context.Context, q db.Querier, employeeID string) (EmployeeRef, error) {
	var ref EmployeeRef
	err := q.QueryRow(ctx, `
    SELECT id, name, COALESCE(manager_id::text, '')
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&ref.ID, &ref.Name, &ref.ManagerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeRef{}, ErrEmployeeNotFound
	}
	return ref, err
}

// ScopeClause renders scope as a WHERE clause over leave_requests aliased lr.
// Placeholders continue after args.
func ScopeClause(scope Scope, args []any) (string, []any) {
	if scope.All {
		return " WHERE 1=1", args
	}
	var parts []string
	if scope.SelfID != "" {
		args = append(args, scope.SelfID)
		parts = append(parts, fmt.Sprintf("lr.employee_id = $%d", len(args)))
	}
	if scope.TeamOf != "" {
		args = append(args, scope.TeamOf)
		parts = append(parts, fmt.Sprintf("lr.employee_id IN (SELECT id FROM employees WHERE manager_id = $%d)", len(args)))
	}
	switch len(parts) {
	case 0:
		return " WHERE false", args
	case 1:
		return " WHERE " + parts[0], args
	default:
		return " WHERE (" + parts[0] + " OR " + parts[1] + ")", args
	}
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

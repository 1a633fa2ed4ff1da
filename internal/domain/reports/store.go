package reports

import (
	"context"
	"fmt"

	"hrdesk/internal/domain/leave"
	"hrdesk/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) LeaveGroups(ctx context.Context, scope leave.Scope, filter LeaveFilter) ([]leaveGroup, error) {
	query, args := buildLeaveQuery(scope, filter)
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []leaveGroup
	for rows.Next() {
		var g leaveGroup
		if err := rows.Scan(&g.Status, &g.LeaveType, &g.Count, &g.Days); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) PayrollGroups(ctx context.Context, filter PayrollFilter) ([]payrollGroup, error) {
	query, args := buildPayrollQuery(filter)
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payrollGroup
	for rows.Next() {
		var g payrollGroup
		if err := rows.Scan(&g.Status, &g.Count, &g.Gross, &g.Net); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// buildLeaveQuery groups requests by status and type. A date range keeps
// requests that overlap it.
func buildLeaveQuery(scope leave.Scope, filter LeaveFilter) (string, []any) {
	where, args := leave.ScopeClause(scope, nil)
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND lr.employee_id = $%d", len(args))
	}
	if filter.LeaveType != "" {
		args = append(args, filter.LeaveType)
		where += fmt.Sprintf(" AND lr.leave_type = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		where += fmt.Sprintf(" AND lr.end_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		where += fmt.Sprintf(" AND lr.start_date <= $%d", len(args))
	}
	query := `
    SELECT lr.status, lr.leave_type, COUNT(1), COALESCE(SUM(lr.total_days), 0)::float8
    FROM leave_requests lr` + where + `
    GROUP BY lr.status, lr.leave_type`
	return query, args
}

func buildPayrollQuery(filter PayrollFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.EmployeeCode != "" {
		args = append(args, filter.EmployeeCode)
		where += fmt.Sprintf(" AND employee_code = $%d", len(args))
	}
	if filter.MonthNumber != 0 {
		args = append(args, filter.MonthNumber)
		where += fmt.Sprintf(" AND month_number = $%d", len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(" AND year = $%d", len(args))
	}
	query := `
    SELECT status, COUNT(1), COALESCE(SUM(gross_salary), 0), COALESCE(SUM(net_salary), 0)
    FROM salary_records` + where + `
    GROUP BY status`
	return query, args
}

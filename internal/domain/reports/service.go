package reports

import (
	"context"
	"fmt"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/leave"
)

var ErrPayrollReportForbidden = fmt.Errorf("role cannot read payroll totals: %w", apperr.ErrForbidden)

type Repository interface {
	LeaveGroups(ctx context.Context, scope leave.Scope, filter LeaveFilter) ([]leaveGroup, error)
	PayrollGroups(ctx context.Context, filter PayrollFilter) ([]payrollGroup, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// LeaveReport totals requests the actor may read: everything for final
// approvers, own and team requests for managers.
func (s *Service) LeaveReport(ctx context.Context, actor leave.Actor, filter LeaveFilter) (LeaveReport, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return LeaveReport{}, apperr.Invalid("to", "must not be before from")
	}
	scope := leave.ScopeFor(actor)
	groups, err := s.Repo.LeaveGroups(ctx, scope, filter)
	if err != nil {
		return LeaveReport{}, fmt.Errorf("leave report: %w", err)
	}
	return tallyLeave(groups), nil
}

func (s *Service) PayrollReport(ctx context.Context, role string, filter PayrollFilter) (PayrollReport, error) {
	if role != auth.RoleHR && role != auth.RoleAdmin {
		return PayrollReport{}, ErrPayrollReportForbidden
	}
	groups, err := s.Repo.PayrollGroups(ctx, filter)
	if err != nil {
		return PayrollReport{}, fmt.Errorf("payroll report: %w", err)
	}
	return tallyPayroll(groups), nil
}

package leave

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
)

// BalanceSummary is grant minus approved days per ledger type. It is not clamped.
func (s *Service) BalanceSummary(ctx context.Context, employeeID string) (core.LeaveBalance, error) {
	if _, err := s.Repo.Employee(ctx, employeeID); err != nil {
		return core.LeaveBalance{}, err
	}
	ledger, err := s.ledger(ctx, s.Repo, employeeID)
	if err != nil {
		return core.LeaveBalance{}, err
	}
	approved, err := s.Repo.ApprovedDays(ctx, employeeID)
	if err != nil {
		return core.LeaveBalance{}, err
	}
	var out core.LeaveBalance
	for _, leaveType := range core.BalanceTypes {
		out.Set(leaveType, ledger.Granted.Get(leaveType)-approved.Get(leaveType))
	}
	return out, nil
}

// Dashboard loads the caller's balance, recent requests in scope and the pending count concurrently.
func (s *Service) Dashboard(ctx context.Context, actor Actor) (Dashboard, error) {
	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)

	if actor.EmployeeID != "" {
		g.Go(func() error {
			balance, err := s.BalanceSummary(gctx, actor.EmployeeID)
			if err != nil {
				return fmt.Errorf("balance: %w", err)
			}
			out.Balance = balance
			return nil
		})
	}

	g.Go(func() error {
		items, _, err := s.Repo.ListRequests(gctx, ScopeFor(actor), ListFilter{Limit: recentRequestsLimit})
		if err != nil {
			return fmt.Errorf("recent requests: %w", err)
		}
		out.RecentRequests = items
		return nil
	})

	if scope, ok := ApprovalScope(actor); ok {
		g.Go(func() error {
			count, err := s.Repo.CountPending(gctx, scope)
			if err != nil {
				return fmt.Errorf("pending count: %w", err)
			}
			out.PendingCount = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("leave dashboard: %w", err)
	}
	if out.RecentRequests == nil {
		out.RecentRequests = []LeaveRequest{}
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, actor Actor, filter ListFilter) (RequestList, error) {
	filter = clampFilter(filter)
	items, total, err := s.Repo.ListRequests(ctx, ScopeFor(actor), filter)
	if err != nil {
		return RequestList{}, fmt.Errorf("list leave: %w", err)
	}
	if items == nil {
		items = []LeaveRequest{}
	}
	return RequestList{Items: items, Total: total}, nil
}

// PendingQueue lists pending requests the actor may act on.
func (s *Service) PendingQueue(ctx context.Context, actor Actor, filter ListFilter) (RequestList, error) {
	scope, ok := ApprovalScope(actor)
	if !ok {
		return RequestList{}, ErrCannotApprove
	}
	filter = clampFilter(filter)
	filter.Status = StatusPending
	if actor.Role == auth.RoleManager {
		filter.Stage = StageAwaitingManager
	}
	items, total, err := s.Repo.ListRequests(ctx, scope, filter)
	if err != nil {
		return RequestList{}, fmt.Errorf("pending leave: %w", err)
	}
	if items == nil {
		items = []LeaveRequest{}
	}
	return RequestList{Items: items, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, actor Actor, id string) (LeaveRequest, error) {
	req, err := s.Repo.GetRequest(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	emp, err := s.Repo.Employee(ctx, req.EmployeeID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if !ScopeFor(actor).Includes(emp.ID, emp.ManagerID) {
		return LeaveRequest{}, ErrOutOfScope
	}
	return req, nil
}

func clampFilter(filter ListFilter) ListFilter {
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

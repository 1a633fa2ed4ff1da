package leave

import (
	"context"
	"fmt"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
)

// GetBalance returns the stored ledger remaining figures, defaulting missing types to the grants.
func (s *Service) GetBalance(ctx context.Context, employeeID string) (core.LeaveBalance, error) {
	ledger, err := s.ledger(ctx, s.Repo, employeeID)
	if err != nil {
		return core.LeaveBalance{}, err
	}
	return ledger.Remaining, nil
}

// ComputeAvailable is grant minus approved days. It is the figure filings are checked against.
func (s *Service) ComputeAvailable(ctx context.Context, employeeID, leaveType string) (float64, error) {
	summary, err := s.BalanceSummary(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return summary.Get(leaveType), nil
}

// Reconcile rewrites the cached remaining balance from approved requests.
func (s *Service) Reconcile(ctx context.Context, actor Actor, employeeID string) (core.Ledger, error) {
	if !auth.IsFinalApprover(actor.Role) {
		return core.Ledger{}, ErrLedgerAdminOnly
	}
	var out core.Ledger
	err := s.Repo.WithinTx(ctx, func(tx TxRepository) error {
		if _, err := tx.Employee(ctx, employeeID); err != nil {
			return err
		}
		ledger, err := s.ledger(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		for _, leaveType := range core.BalanceTypes {
			if err := tx.LockLedger(ctx, employeeID, leaveType); err != nil {
				return err
			}
			approved, err := tx.ApprovedDaysOfType(ctx, employeeID, leaveType)
			if err != nil {
				return err
			}
			granted := ledger.Granted.Get(leaveType)
			remaining := ClampedDeduct(granted, approved)
			if err := tx.SetLedgerEntry(ctx, employeeID, leaveType, granted, remaining); err != nil {
				return err
			}
			out.Granted.Set(leaveType, granted)
			out.Remaining.Set(leaveType, remaining)
		}
		return nil
	})
	if err != nil {
		return core.Ledger{}, fmt.Errorf("reconcile ledger: %w", err)
	}
	return out, nil
}

type ledgerReader interface {
	Ledger(ctx context.Context, employeeID string) (core.Ledger, map[string]bool, error)
}

func (s *Service) ledger(ctx context.Context, r ledgerReader, employeeID string) (core.Ledger, error) {
	ledger, present, err := r.Ledger(ctx, employeeID)
	if err != nil {
		return core.Ledger{}, err
	}
	return core.FillDefaults(ledger, present, s.Grants), nil
}

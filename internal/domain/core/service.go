package core

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/domain/auth"
)

type Service struct {
	store  *Store
	grants LeaveBalance
}

// NewService takes the entitlement policy applied to newly onboarded employees.
func NewService(store *Store, grants LeaveBalance) *Service {
	return &Service{store: store, grants: grants}
}

func (s *Service) Grants() LeaveBalance {
	return s.grants
}

func (s *Service) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, ErrEmployeeNotFound
	}
	return s.store.GetEmployee(ctx, employeeID)
}

func (s *Service) GetEmployeeByCode(ctx context.Context, code string) (*Employee, error) {
	return s.store.GetEmployeeByCode(ctx, strings.TrimSpace(code))
}

func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter, limit, offset int) ([]Employee, int, error) {
	return s.store.ListEmployees(ctx, filter, limit, offset)
}

func (s *Service) FindTeamMembers(ctx context.Context, managerID string) ([]Employee, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, ErrEmployeeNotFound
	}
	return s.store.TeamMembers(ctx, managerID)
}

func (s *Service) EmployeeIDsByRole(ctx context.Context, roles ...string) ([]string, error) {
	return s.store.EmployeeIDsByRole(ctx, roles...)
}

// GetLeaveBalance returns the ledger, filling types without a row from the grant policy.
func (s *Service) GetLeaveBalance(ctx context.Context, employeeID string) (Ledger, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return Ledger{}, err
	}
	ledger, present, err := s.store.LedgerRows(ctx, s.store.DB, employeeID)
	if err != nil {
		return Ledger{}, err
	}
	return FillDefaults(ledger, present, s.grants), nil
}

// SetLeaveBalance overwrites the ledger; used for period resets and manual corrections.
func (s *Service) SetLeaveBalance(ctx context.Context, employeeID string, ledger Ledger) (Ledger, error) {
	v := &apperr.ValidationError{}
	for _, leaveType := range BalanceTypes {
		if ledger.Granted.Get(leaveType) < 0 {
			v.Add("granted."+leaveType, "must not be negative")
		}
		if ledger.Remaining.Get(leaveType) < 0 {
			v.Add("remaining."+leaveType, "must not be negative")
		}
	}
	if err := v.Err(); err != nil {
		return Ledger{}, err
	}
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return Ledger{}, err
	}
	if err := s.store.UpsertLedger(ctx, s.store.DB, employeeID, ledger); err != nil {
		return Ledger{}, fmt.Errorf("set leave balance: %w", err)
	}
	return ledger, nil
}

// Onboard creates the login, the employee record and a ledger seeded from the grant policy.
func (s *Service) Onboard(ctx context.Context, in OnboardInput) (*Employee, error) {
	in = normalizeOnboard(in)
	if err := ValidateOnboard(in); err != nil {
		return nil, err
	}
	if in.ManagerID != "" {
		if _, err := s.GetEmployee(ctx, in.ManagerID); err != nil {
			return nil, apperr.Invalid("managerId", "must reference an existing employee")
		}
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	id, err := s.store.CreateEmployeeWithUser(ctx, in, hash, s.grants)
	if err != nil {
		return nil, err
	}
	return s.store.GetEmployee(ctx, id)
}

func normalizeOnboard(in OnboardInput) OnboardInput {
	in.EmployeeCode = strings.TrimSpace(in.EmployeeCode)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if in.Role == "" {
		in.Role = auth.RoleEmployee
	}
	in.ManagerID = strings.TrimSpace(in.ManagerID)
	return in
}

func ValidateOnboard(in OnboardInput) error {
	v := &apperr.ValidationError{}
	if in.EmployeeCode == "" {
		v.Add("employeeCode", "is required")
	}
	if in.Name == "" {
		v.Add("name", "is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil || in.Email == "" {
		v.Add("email", "must be a valid email address")
	}
	if len(in.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if !auth.ValidRole(in.Role) {
		v.Add("role", "must be one of employee, manager, hr, admin, subadmin")
	}
	if in.ManagerID != "" {
		if _, err := uuid.Parse(in.ManagerID); err != nil {
			v.Add("managerId", "must be a valid id")
		}
	}
	return v.Err()
}

// FillDefaults applies grants to types that have no stored ledger row.
func FillDefaults(ledger Ledger, present map[string]bool, grants LeaveBalance) Ledger {
	for _, leaveType := range BalanceTypes {
		if present[leaveType] {
			continue
		}
		ledger.Granted.Set(leaveType, grants.Get(leaveType))
		ledger.Remaining.Set(leaveType, grants.Get(leaveType))
	}
	return ledger
}

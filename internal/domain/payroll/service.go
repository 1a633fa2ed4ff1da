package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/platform/storage"
)

// DocumentStore keeps rendered payslips.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Sealer encrypts documents at rest.
type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(data []byte) ([]byte, error)
}

type Notifier interface {
	Create(ctx context.Context, msg notifications.Message) error
}

type Service struct {
	Repo      Repository
	Documents DocumentStore
	Sealer    Sealer
	Notifier  Notifier
	Now       func() time.Time
}

func NewService(repo Repository, docs DocumentStore, sealer Sealer, notifier Notifier) *Service {
	return &Service{Repo: repo, Documents: docs, Sealer: sealer, Notifier: notifier, Now: time.Now}
}

// CreateSalaryRecord computes and stores the salary of one employee for one month.
// The unpaid-leave deduction is fixed here and not recomputed on later updates.
func (s *Service) CreateSalaryRecord(ctx context.Context, actor Actor, in CreateInput) (SalaryRecord, error) {
	if !auth.SeesAllRecords(actor.Role) {
		return SalaryRecord{}, ErrPayrollAdminOnly
	}
	in.EmployeeCode = strings.TrimSpace(in.EmployeeCode)

	v := &apperr.ValidationError{}
	if in.EmployeeCode == "" {
		v.Add("employeeCode", "is required")
	}
	month, err := ParseMonth(in.Month)
	if err != nil {
		v.Add("month", err.Error())
	}
	if in.Year < minYear || in.Year > maxYear {
		v.Add("year", fmt.Sprintf("must be between %d and %d", minYear, maxYear))
	}
	validateComponents(in.Components, v)
	if err := v.Err(); err != nil {
		return SalaryRecord{}, err
	}

	emp, err := s.Repo.EmployeeByCode(ctx, in.EmployeeCode)
	if err != nil {
		return SalaryRecord{}, err
	}

	from, to := MonthBounds(in.Year, month)
	intervals, err := s.Repo.ApprovedUnpaidLeave(ctx, emp.ID, from, to)
	if err != nil {
		return SalaryRecord{}, fmt.Errorf("load unpaid leave: %w", err)
	}
	leaveDays := LeaveDays(intervals, in.Year, month)
	deduction := LeaveDeduction(in.Basic, leaveDays)

	rec := SalaryRecord{
		EmployeeCode:   emp.Code,
		EmployeeName:   emp.Name,
		Month:          month.String(),
		MonthNumber:    int(month),
		Year:           in.Year,
		Components:     in.Components,
		LeaveDays:      decimal.NewFromInt(int64(leaveDays)),
		LeaveDeduction: deduction,
		GrossSalary:    Gross(in.Components),
		NetSalary:      Net(in.Components, deduction),
		Status:         StatusPending,
	}
	if err := s.Repo.CreateRecord(ctx, &rec); err != nil {
		return SalaryRecord{}, err
	}
	return rec, nil
}

// UpdateSalaryRecord applies a partial update and recomputes gross and net
// with the stored leave deduction. The record stays locked from read to write.
func (s *Service) UpdateSalaryRecord(ctx context.Context, actor Actor, id string, in UpdateInput) (SalaryRecord, error) {
	if actor.Role != auth.RoleHR && actor.Role != auth.RoleAdmin {
		return SalaryRecord{}, ErrPayrollAdminOnly
	}
	if _, err := uuid.Parse(id); err != nil {
		return SalaryRecord{}, ErrSalaryNotFound
	}
	now := s.Now().UTC()
	return s.Repo.ModifyRecord(ctx, id, func(rec *SalaryRecord) error {
		return applyUpdate(rec, in, now)
	})
}

func applyUpdate(rec *SalaryRecord, in UpdateInput, now time.Time) error {
	c := &rec.Components
	for _, f := range []struct {
		dst *decimal.Decimal
		src *decimal.Decimal
	}{
		{&c.Basic, in.Basic},
		{&c.HRA, in.HRA},
		{&c.DA, in.DA},
		{&c.Allowances, in.Allowances},
		{&c.PF, in.PF},
		{&c.Tax, in.Tax},
		{&c.OtherDeductions, in.OtherDeductions},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	v := &apperr.ValidationError{}
	validateComponents(rec.Components, v)
	if in.Status != nil {
		next := strings.ToLower(strings.TrimSpace(*in.Status))
		switch {
		case !slices.Contains(Statuses, next):
			v.Add("status", "must be one of pending, approved, paid")
		case statusRank(next) < statusRank(rec.Status):
			return ErrStatusRegression
		default:
			rec.Status = next
		}
	}
	if err := v.Err(); err != nil {
		return err
	}

	rec.GrossSalary = Gross(rec.Components)
	rec.NetSalary = Net(rec.Components, rec.LeaveDeduction)
	rec.UpdatedAt = now
	return nil
}

// GetSalaryRecord returns a record the actor may see: their own, or any for payroll staff.
func (s *Service) GetSalaryRecord(ctx context.Context, actor Actor, id string) (SalaryRecord, error) {
	rec, err := s.record(ctx, id)
	if err != nil {
		return SalaryRecord{}, err
	}
	if auth.SeesAllRecords(actor.Role) {
		return rec, nil
	}
	code, err := s.ownCode(ctx, actor)
	if err != nil {
		return SalaryRecord{}, err
	}
	if rec.EmployeeCode != code {
		return SalaryRecord{}, ErrOutOfScope
	}
	return rec, nil
}

// ListSalaryRecords is newest period first. Non-staff callers only ever see their own records.
func (s *Service) ListSalaryRecords(ctx context.Context, actor Actor, filter ListFilter) (RecordList, error) {
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status != "" && !slices.Contains(Statuses, filter.Status) {
		return RecordList{}, apperr.Invalid("status", "must be one of pending, approved, paid")
	}
	if !auth.SeesAllRecords(actor.Role) {
		code, err := s.ownCode(ctx, actor)
		if err != nil {
			return RecordList{}, err
		}
		filter.EmployeeCode = code
	}
	items, total, err := s.Repo.ListRecords(ctx, filter)
	if err != nil {
		return RecordList{}, fmt.Errorf("list salary records: %w", err)
	}
	if items == nil {
		items = []SalaryRecord{}
	}
	return RecordList{Items: items, Total: total}, nil
}

func (s *Service) DeleteSalaryRecord(ctx context.Context, actor Actor, id string) error {
	if !auth.SeesAllRecords(actor.Role) {
		return ErrPayrollAdminOnly
	}
	rec, err := s.record(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteRecord(ctx, rec.ID); err != nil {
		return err
	}
	if rec.PayslipKey != "" {
		s.dropDocument(ctx, rec.PayslipKey)
	}
	return nil
}

// GeneratePayslip renders, seals and stores the payslip, then moves a pending record to approved.
func (s *Service) GeneratePayslip(ctx context.Context, actor Actor, id string) (SalaryRecord, error) {
	if !auth.SeesAllRecords(actor.Role) {
		return SalaryRecord{}, ErrPayrollAdminOnly
	}
	rec, err := s.record(ctx, id)
	if err != nil {
		return SalaryRecord{}, err
	}
	emp, err := s.Repo.EmployeeByCode(ctx, rec.EmployeeCode)
	if err != nil {
		return SalaryRecord{}, err
	}

	pdf, err := RenderPayslip(rec, emp)
	if err != nil {
		return SalaryRecord{}, err
	}
	data, err := s.seal(pdf)
	if err != nil {
		return SalaryRecord{}, fmt.Errorf("seal payslip: %w", err)
	}
	key := fmt.Sprintf("payslips/%d/%02d/%s-%s.pdf", rec.Year, rec.MonthNumber, rec.EmployeeCode, uuid.NewString())
	if err := s.Documents.Put(ctx, key, data, payslipContentType); err != nil {
		return SalaryRecord{}, fmt.Errorf("store payslip: %w", err)
	}

	status := rec.Status
	if status == StatusPending {
		status = StatusApproved
	}
	if err := s.Repo.SetPayslip(ctx, rec.ID, key, status); err != nil {
		s.dropDocument(ctx, key)
		return SalaryRecord{}, err
	}
	if rec.PayslipKey != "" {
		s.dropDocument(ctx, rec.PayslipKey)
	}
	rec.PayslipKey = key
	rec.HasPayslip = true
	rec.Status = status
	rec.EmployeeName = emp.Name

	if s.Notifier != nil {
		msg := notifications.Message{
			EmployeeID:  emp.ID,
			Type:        notifications.TypePayslipPublished,
			Title:       "Payslip available",
			Body:        fmt.Sprintf("Your payslip for %s %d is ready. Net salary: %s.", rec.Month, rec.Year, rec.NetSalary.StringFixed(2)),
			RelatedID:   rec.ID,
			RelatedType: notifications.RelatedSalaryRecord,
		}
		if err := s.Notifier.Create(ctx, msg); err != nil {
			slog.Warn("payslip notification failed", "salaryId", rec.ID, "err", err)
		}
	}
	return rec, nil
}

// DownloadPayslip returns the decrypted payslip of a record visible to the actor.
func (s *Service) DownloadPayslip(ctx context.Context, actor Actor, id string) (Payslip, error) {
	rec, err := s.GetSalaryRecord(ctx, actor, id)
	if err != nil {
		return Payslip{}, err
	}
	if rec.PayslipKey == "" {
		return Payslip{}, ErrPayslipNotGenerated
	}
	data, err := s.Documents.Get(ctx, rec.PayslipKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return Payslip{}, ErrPayslipNotGenerated
	}
	if err != nil {
		return Payslip{}, fmt.Errorf("load payslip: %w", err)
	}
	if s.Sealer != nil {
		if data, err = s.Sealer.Open(data); err != nil {
			return Payslip{}, fmt.Errorf("open payslip: %w", err)
		}
	}
	return Payslip{
		FileName: fmt.Sprintf("payslip_%s_%s_%d.pdf", rec.EmployeeCode, rec.Month, rec.Year),
		Content:  data,
	}, nil
}

func (s *Service) record(ctx context.Context, id string) (SalaryRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryRecord{}, ErrSalaryNotFound
	}
	return s.Repo.GetRecord(ctx, id)
}

func (s *Service) ownCode(ctx context.Context, actor Actor) (string, error) {
	if actor.EmployeeID == "" {
		return "", ErrOutOfScope
	}
	emp, err := s.Repo.EmployeeByID(ctx, actor.EmployeeID)
	if err != nil {
		return "", err
	}
	return emp.Code, nil
}

func (s *Service) seal(pdf []byte) ([]byte, error) {
	if s.Sealer == nil {
		return pdf, nil
	}
	return s.Sealer.Seal(pdf)
}

func (s *Service) dropDocument(ctx context.Context, key string) {
	if err := s.Documents.Delete(ctx, key); err != nil {
		slog.Warn("payslip document cleanup failed", "key", key, "err", err)
	}
}

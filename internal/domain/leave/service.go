package leave

import (
	"context"
	"fmt"
	"time"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
	"hrdesk/internal/domain/notifications"
)

type Service struct {
	Repo   Repository
	Grants core.LeaveBalance
	Notify Deliverer
	Now    func() time.Time
}

func NewService(repo Repository, grants core.LeaveBalance, notify Deliverer) *Service {
	return &Service{Repo: repo, Grants: grants, Notify: notify, Now: time.Now}
}

// Submit files a request after checking it against the available balance.
func (s *Service) Submit(ctx context.Context, actor Actor, in SubmitInput) (LeaveRequest, error) {
	if actor.EmployeeID == "" {
		return LeaveRequest{}, ErrNoEmployee
	}
	in = normalizeSubmit(in)
	days, err := ValidateSubmit(in)
	if err != nil {
		return LeaveRequest{}, err
	}

	var req LeaveRequest
	var outbox []notifications.Message
	err = s.Repo.WithinTx(ctx, func(tx TxRepository) error {
		emp, err := tx.Employee(ctx, actor.EmployeeID)
		if err != nil {
			return err
		}
		ledger, err := s.ledger(ctx, tx, emp.ID)
		if err != nil {
			return err
		}
		if HasLedger(in.LeaveType) {
			if err := tx.LockLedger(ctx, emp.ID, in.LeaveType); err != nil {
				return err
			}
			approved, err := tx.ApprovedDaysOfType(ctx, emp.ID, in.LeaveType)
			if err != nil {
				return err
			}
			available := ledger.Granted.Get(in.LeaveType) - approved
			if available < days {
				return &apperr.InsufficientBalanceError{LeaveType: in.LeaveType, Available: available, Requested: days}
			}
		}

		req = LeaveRequest{
			EmployeeID:      emp.ID,
			EmployeeName:    emp.Name,
			LeaveType:       in.LeaveType,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			TotalDays:       days,
			Reason:          in.Reason,
			Stage:           StageAwaitingManager,
			Status:          StageAwaitingManager.Status(),
			BalanceSnapshot: ledger.Remaining,
		}
		if err := tx.InsertRequest(ctx, &req); err != nil {
			return err
		}

		if emp.ManagerID != "" {
			msg := notifications.Message{
				EmployeeID:  emp.ManagerID,
				Type:        notifications.TypeLeaveSubmitted,
				Title:       "New leave request",
				Body:        fmt.Sprintf("%s requested %g day(s) of %s leave from %s to %s.", emp.Name, days, in.LeaveType, formatDate(in.StartDate), formatDate(in.EndDate)),
				RelatedID:   req.ID,
				RelatedType: notifications.RelatedLeaveRequest,
			}
			if err := tx.Notify(ctx, msg); err != nil {
				return err
			}
			outbox = append(outbox, msg)
		}
		return nil
	})
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("submit leave: %w", err)
	}
	s.deliver(ctx, outbox)
	return req, nil
}

// Approve records a signature. A manager signature moves the request to HR; a final signature approves it and deducts the ledger.
func (s *Service) Approve(ctx context.Context, approver Actor, id string) (LeaveRequest, error) {
	var req LeaveRequest
	var outbox []notifications.Message
	err := s.Repo.WithinTx(ctx, func(tx TxRepository) error {
		var err error
		req, err = tx.LockRequest(ctx, id)
		if err != nil {
			return err
		}
		emp, err := tx.Employee(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		tr, err := ApproveTransition(req, approver, isDirectManager(emp, approver))
		if err != nil {
			return err
		}

		now := s.Now().UTC()
		if tr.SignManager {
			req.ManagerApproverID = approver.UserID
		}
		if tr.SignHR {
			req.HRApproverID = approver.UserID
		}
		if tr.Final {
			req.ApprovedAt = &now
		}
		req.Stage = tr.Next
		req.Status = tr.Next.Status()
		req.UpdatedAt = now
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}

		if tr.Final && HasLedger(req.LeaveType) {
			if _, err := tx.Deduct(ctx, req.EmployeeID, req.LeaveType, req.TotalDays, s.Grants.Get(req.LeaveType)); err != nil {
				return err
			}
		}

		msgs := []notifications.Message{approvalMessage(req, emp)}
		if req.Stage == StageAwaitingHR {
			reviewers, err := tx.EmployeeIDsByRole(ctx, auth.RoleHR, auth.RoleAdmin)
			if err != nil {
				return err
			}
			for _, reviewerID := range reviewers {
				if reviewerID == req.EmployeeID {
					continue
				}
				msgs = append(msgs, notifications.Message{
					EmployeeID:  reviewerID,
					Type:        notifications.TypeLeaveAwaitingHR,
					Title:       "Leave request awaiting HR approval",
					Body:        fmt.Sprintf("%s's %s leave (%g day(s)) was approved by their manager.", emp.Name, req.LeaveType, req.TotalDays),
					RelatedID:   req.ID,
					RelatedType: notifications.RelatedLeaveRequest,
				})
			}
		}
		for _, msg := range msgs {
			if err := tx.Notify(ctx, msg); err != nil {
				return err
			}
		}
		outbox = msgs
		return nil
	})
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("approve leave: %w", err)
	}
	s.deliver(ctx, outbox)
	return req, nil
}

func (s *Service) Reject(ctx context.Context, approver Actor, id, reason string) (LeaveRequest, error) {
	var req LeaveRequest
	var outbox []notifications.Message
	err := s.Repo.WithinTx(ctx, func(tx TxRepository) error {
		var err error
		req, err = tx.LockRequest(ctx, id)
		if err != nil {
			return err
		}
		emp, err := tx.Employee(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		next, err := RejectTransition(req, approver, isDirectManager(emp, approver))
		if err != nil {
			return err
		}
		req.Stage = next
		req.Status = next.Status()
		req.RejectionReason = reason
		req.UpdatedAt = s.Now().UTC()
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}

		body := fmt.Sprintf("Your %s leave from %s to %s was rejected.", req.LeaveType, formatDate(req.StartDate), formatDate(req.EndDate))
		if reason != "" {
			body += " Reason: " + reason
		}
		msg := notifications.Message{
			EmployeeID:  req.EmployeeID,
			Type:        notifications.TypeLeaveRejected,
			Title:       "Leave request rejected",
			Body:        body,
			RelatedID:   req.ID,
			RelatedType: notifications.RelatedLeaveRequest,
		}
		if err := tx.Notify(ctx, msg); err != nil {
			return err
		}
		outbox = append(outbox, msg)
		return nil
	})
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("reject leave: %w", err)
	}
	s.deliver(ctx, outbox)
	return req, nil
}

func (s *Service) Cancel(ctx context.Context, actor Actor, id string) (LeaveRequest, error) {
	var req LeaveRequest
	var outbox []notifications.Message
	err := s.Repo.WithinTx(ctx, func(tx TxRepository) error {
		var err error
		req, err = tx.LockRequest(ctx, id)
		if err != nil {
			return err
		}
		next, err := CancelTransition(req, actor)
		if err != nil {
			return err
		}
		req.Stage = next
		req.Status = next.Status()
		req.UpdatedAt = s.Now().UTC()
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}

		emp, err := tx.Employee(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.ManagerID == "" {
			return nil
		}
		msg := notifications.Message{
			EmployeeID:  emp.ManagerID,
			Type:        notifications.TypeLeaveCancelled,
			Title:       "Leave request cancelled",
			Body:        fmt.Sprintf("%s cancelled their %s leave from %s to %s.", emp.Name, req.LeaveType, formatDate(req.StartDate), formatDate(req.EndDate)),
			RelatedID:   req.ID,
			RelatedType: notifications.RelatedLeaveRequest,
		}
		if err := tx.Notify(ctx, msg); err != nil {
			return err
		}
		outbox = append(outbox, msg)
		return nil
	})
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("cancel leave: %w", err)
	}
	s.deliver(ctx, outbox)
	return req, nil
}

func (s *Service) deliver(ctx context.Context, msgs []notifications.Message) {
	if s.Notify == nil || len(msgs) == 0 {
		return
	}
	s.Notify.Deliver(ctx, msgs...)
}

func isDirectManager(emp EmployeeRef, approver Actor) bool {
	return approver.EmployeeID != "" && emp.ManagerID == approver.EmployeeID
}

func approvalMessage(req LeaveRequest, emp EmployeeRef) notifications.Message {
	msg := notifications.Message{
		EmployeeID:  emp.ID,
		RelatedID:   req.ID,
		RelatedType: notifications.RelatedLeaveRequest,
	}
	if req.Stage == StageApproved {
		msg.Type = notifications.TypeLeaveApproved
		msg.Title = "Leave request approved"
		msg.Body = fmt.Sprintf("Your %s leave from %s to %s (%g day(s)) was approved.", req.LeaveType, formatDate(req.StartDate), formatDate(req.EndDate), req.TotalDays)
		return msg
	}
	msg.Type = notifications.TypeLeaveManagerApproved
	msg.Title = "Leave approved by manager"
	msg.Body = fmt.Sprintf("Your %s leave from %s to %s was approved by your manager and awaits HR.", req.LeaveType, formatDate(req.StartDate), formatDate(req.EndDate))
	return msg
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

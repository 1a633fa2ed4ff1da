package leave

import (
	"errors"
	"testing"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/domain/auth"
)

func TestStageStatus(t *testing.T) {
	cases := map[Stage]string{
		StageAwaitingManager: StatusPending,
		StageAwaitingHR:      StatusPending,
		StageApproved:        StatusApproved,
		StageRejected:        StatusRejected,
		StageCancelled:       StatusCancelled,
	}
	for stage, want := range cases {
		if got := stage.Status(); got != want {
			t.Fatalf("%s: expected %s, got %s", stage, want, got)
		}
	}
}

func TestApproveTransition(t *testing.T) {
	manager := Actor{UserID: "u-m", EmployeeID: "e-m", Role: auth.RoleManager}
	hr := Actor{UserID: "u-hr", EmployeeID: "e-hr", Role: auth.RoleHR}
	employee := Actor{UserID: "u-e", EmployeeID: "e-x", Role: auth.RoleEmployee}

	fresh := LeaveRequest{Stage: StageAwaitingManager}
	signed := LeaveRequest{Stage: StageAwaitingHR, ManagerApproverID: "u-m"}

	tests := []struct {
		name     string
		req      LeaveRequest
		actor    Actor
		direct   bool
		want     Transition
		wantErr  error
		category error
	}{
		{name: "manager signs", req: fresh, actor: manager, direct: true, want: Transition{Next: StageAwaitingHR, SignManager: true}},
		{name: "manager not direct", req: fresh, actor: manager, wantErr: ErrNotDirectManager, category: apperr.ErrForbidden},
		{name: "manager signs twice", req: signed, actor: manager, direct: true, wantErr: ErrAlreadySigned, category: apperr.ErrInvalidState},
		{name: "hr finalizes signed", req: signed, actor: hr, want: Transition{Next: StageApproved, SignHR: true, Final: true}},
		{name: "hr fills manager slot", req: fresh, actor: hr, want: Transition{Next: StageApproved, SignManager: true, SignHR: true, Final: true}},
		{name: "employee cannot approve", req: fresh, actor: employee, wantErr: ErrCannotApprove, category: apperr.ErrForbidden},
		{name: "terminal", req: LeaveRequest{Stage: StageApproved}, actor: hr, wantErr: ErrNotPending, category: apperr.ErrInvalidState},
		{name: "hr on own request", req: LeaveRequest{EmployeeID: "e-hr", Stage: StageAwaitingManager}, actor: hr, wantErr: ErrSelfApproval, category: apperr.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApproveTransition(tt.req, tt.actor, tt.direct)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, tt.category) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRejectTransition(t *testing.T) {
	manager := Actor{EmployeeID: "e-m", Role: auth.RoleManager}
	if _, err := RejectTransition(LeaveRequest{Stage: StageAwaitingManager}, manager, false); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	next, err := RejectTransition(LeaveRequest{Stage: StageAwaitingHR}, Actor{Role: auth.RoleAdmin}, false)
	if err != nil || next != StageRejected {
		t.Fatalf("expected rejected, got %v %v", next, err)
	}
	if _, err := RejectTransition(LeaveRequest{Stage: StageCancelled}, Actor{Role: auth.RoleAdmin}, false); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	own := LeaveRequest{EmployeeID: "e-a", Stage: StageAwaitingManager}
	if _, err := RejectTransition(own, Actor{EmployeeID: "e-a", Role: auth.RoleAdmin}, false); !errors.Is(err, ErrSelfApproval) {
		t.Fatalf("expected self approval error, got %v", err)
	}
}

func TestCancelTransition(t *testing.T) {
	req := LeaveRequest{EmployeeID: "e1", Stage: StageAwaitingHR}
	if _, err := CancelTransition(req, Actor{EmployeeID: "e2"}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	next, err := CancelTransition(req, Actor{EmployeeID: "e1"})
	if err != nil || next != StageCancelled {
		t.Fatalf("expected cancelled, got %v %v", next, err)
	}
	req.Stage = StageCancelled
	if _, err := CancelTransition(req, Actor{EmployeeID: "e1"}); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestScopeFor(t *testing.T) {
	if s := ScopeFor(Actor{Role: auth.RoleSubAdmin}); !s.All {
		t.Fatalf("subadmin should see all, got %+v", s)
	}
	s := ScopeFor(Actor{EmployeeID: "m1", Role: auth.RoleManager})
	if !s.Includes("m1", "") || !s.Includes("e1", "m1") || s.Includes("e2", "m2") {
		t.Fatalf("unexpected manager scope %+v", s)
	}
	s = ScopeFor(Actor{EmployeeID: "e1", Role: auth.RoleEmployee})
	if !s.Includes("e1", "m1") || s.Includes("e2", "e1") {
		t.Fatalf("unexpected employee scope %+v", s)
	}
	if _, ok := ApprovalScope(Actor{EmployeeID: "e1", Role: auth.RoleEmployee}); ok {
		t.Fatal("employee should have no approval scope")
	}
}

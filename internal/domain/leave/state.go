package leave

import "hrdesk/internal/domain/auth"

// Stage is the explicit position of a request in the two-signature workflow.
type Stage string

const (
	StageAwaitingManager Stage = "awaiting_manager"
	StageAwaitingHR      Stage = "awaiting_hr"
	StageApproved        Stage = "approved"
	StageRejected        Stage = "rejected"
	StageCancelled       Stage = "cancelled"
)

func (s Stage) Status() string {
	switch s {
	case StageAwaitingManager, StageAwaitingHR:
		return StatusPending
	default:
		return string(s)
	}
}

func (s Stage) Pending() bool {
	return s.Status() == StatusPending
}

func (s Stage) Valid() bool {
	switch s {
	case StageAwaitingManager, StageAwaitingHR, StageApproved, StageRejected, StageCancelled:
		return true
	}
	return false
}

// Transition is what an approval does to a request.
type Transition struct {
	Next        Stage
	SignManager bool
	SignHR      bool
	Final       bool
}

// ApproveTransition decides the effect of approver signing req.
// isDirectManager tells whether the approver manages the requesting employee.
func ApproveTransition(req LeaveRequest, approver Actor, isDirectManager bool) (Transition, error) {
	if !req.Stage.Pending() {
		return Transition{}, ErrNotPending
	}
	if ownRequest(req, approver) {
		return Transition{}, ErrSelfApproval
	}
	switch {
	case auth.IsFinalApprover(approver.Role):
		return Transition{
			Next:        StageApproved,
			SignManager: req.ManagerApproverID == "",
			SignHR:      true,
			Final:       true,
		}, nil
	case approver.Role == auth.RoleManager:
		if !isDirectManager {
			return Transition{}, ErrNotDirectManager
		}
		if req.Stage == StageAwaitingHR || req.ManagerApproverID != "" {
			return Transition{}, ErrAlreadySigned
		}
		return Transition{Next: StageAwaitingHR, SignManager: true}, nil
	default:
		return Transition{}, ErrCannotApprove
	}
}

func RejectTransition(req LeaveRequest, approver Actor, isDirectManager bool) (Stage, error) {
	if !req.Stage.Pending() {
		return "", ErrNotPending
	}
	if ownRequest(req, approver) {
		return "", ErrSelfApproval
	}
	switch {
	case auth.IsFinalApprover(approver.Role):
		return StageRejected, nil
	case approver.Role == auth.RoleManager:
		if !isDirectManager {
			return "", ErrNotDirectManager
		}
		return StageRejected, nil
	default:
		return "", ErrCannotApprove
	}
}

// ownRequest holds for staff who filed req themselves; a second person must decide it.
func ownRequest(req LeaveRequest, actor Actor) bool {
	return actor.EmployeeID != "" && actor.EmployeeID == req.EmployeeID
}

func CancelTransition(req LeaveRequest, actor Actor) (Stage, error) {
	if actor.EmployeeID == "" || actor.EmployeeID != req.EmployeeID {
		return "", ErrNotRequester
	}
	if !req.Stage.Pending() {
		return "", ErrNotPending
	}
	return StageCancelled, nil
}

// ScopeFor is the read scope for lists and dashboards.
func ScopeFor(actor Actor) Scope {
	switch {
	case auth.IsFinalApprover(actor.Role):
		return Scope{All: true}
	case actor.Role == auth.RoleManager:
		return Scope{SelfID: actor.EmployeeID, TeamOf: actor.EmployeeID}
	default:
		return Scope{SelfID: actor.EmployeeID}
	}
}

// ApprovalScope is the set of requests the actor can act on; nil scope means none.
func ApprovalScope(actor Actor) (Scope, bool) {
	switch {
	case auth.IsFinalApprover(actor.Role):
		return Scope{All: true}, true
	case actor.Role == auth.RoleManager && actor.EmployeeID != "":
		return Scope{TeamOf: actor.EmployeeID}, true
	default:
		return Scope{}, false
	}
}

package leave

import "hrdesk/internal/domain/core"

const (
	TypeCasual = core.LeaveCasual
	TypeSick   = core.LeaveSick
	TypePaid   = core.LeavePaid
	TypeUnpaid = "unpaid"

	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"

	recentRequestsLimit = 10
	maxListLimit        = 100
)

var Types = []string{TypeCasual, TypeSick, TypePaid, TypeUnpaid}

var Statuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

// HasLedger reports whether leaveType is drawn from the balance ledger.
func HasLedger(leaveType string) bool {
	return leaveType == TypeCasual || leaveType == TypeSick || leaveType == TypePaid
}

func ValidType(leaveType string) bool {
	return HasLedger(leaveType) || leaveType == TypeUnpaid
}

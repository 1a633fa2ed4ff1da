package notifications

const (
	TypeLeaveSubmitted       = "leave_submitted"
	TypeLeaveAwaitingHR      = "leave_awaiting_hr"
	TypeLeaveManagerApproved = "leave_manager_approved"
	TypeLeaveApproved        = "leave_approved"
	TypeLeaveRejected        = "leave_rejected"
	TypeLeaveCancelled       = "leave_cancelled"
	TypePayslipPublished     = "payslip_published"

	RelatedLeaveRequest = "leave_request"
	RelatedSalaryRecord = "salary_record"
)

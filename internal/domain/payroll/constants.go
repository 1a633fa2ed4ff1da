package payroll

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"

	// DaysPerMonth is the divisor for the daily rate regardless of the calendar month length.
	DaysPerMonth = 30

	minYear      = 2000
	maxYear      = 2100
	maxListLimit = 100

	payslipContentType = "application/pdf"
)

var Statuses = []string{StatusPending, StatusApproved, StatusPaid}

// statusRank orders the salary workflow; status never moves to a lower rank.
func statusRank(status string) int {
	switch status {
	case StatusPending:
		return 1
	case StatusApproved:
		return 2
	case StatusPaid:
		return 3
	}
	return 0
}

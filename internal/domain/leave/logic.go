package leave

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hrdesk/internal/domain/apperr"
)

// MaxRequestDays caps a single filing at one leap year.
const MaxRequestDays = 366

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return math.Ceil(end.Sub(start).Hours()/24) + 1, nil
}

// ClampedDeduct is the ledger rule: remaining never drops below zero.
func ClampedDeduct(balance, days float64) float64 {
	return math.Max(0, balance-days)
}

func normalizeSubmit(in SubmitInput) SubmitInput {
	in.LeaveType = strings.ToLower(strings.TrimSpace(in.LeaveType))
	in.Reason = strings.TrimSpace(in.Reason)
	in.StartDate = dateOnly(in.StartDate)
	in.EndDate = dateOnly(in.EndDate)
	return in
}

// ValidateSubmit checks a filing and returns its day count.
func ValidateSubmit(in SubmitInput) (float64, error) {
	v := &apperr.ValidationError{}
	if !ValidType(in.LeaveType) {
		v.Add("leaveType", "must be one of casual, sick, paid, unpaid")
	}
	if in.StartDate.IsZero() {
		v.Add("startDate", "is required")
	}
	if in.EndDate.IsZero() {
		v.Add("endDate", "is required")
	}
	if in.Reason == "" {
		v.Add("reason", "is required")
	}
	var days float64
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() {
		var err error
		days, err = CalculateDays(in.StartDate, in.EndDate)
		if err != nil {
			v.Add("endDate", "must be on or after startDate")
		} else if days < 0.5 {
			v.Add("endDate", "leave must cover at least half a day")
		} else if days > MaxRequestDays {
			v.Add("endDate", fmt.Sprintf("a single request may cover at most %d days", MaxRequestDays))
		}
	}
	if err := v.Err(); err != nil {
		return 0, err
	}
	return days, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

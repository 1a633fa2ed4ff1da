package payroll

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"hrdesk/internal/domain/apperr"
)

var daysPerMonth = decimal.NewFromInt(DaysPerMonth)

// MonthBounds returns the first and last calendar day of the month in UTC.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// OverlapDays counts the inclusive days shared by [start, end] and [from, to].
func OverlapDays(start, end, from, to time.Time) int {
	lo := start
	if from.After(lo) {
		lo = from
	}
	hi := end
	if to.Before(hi) {
		hi = to
	}
	if hi.Before(lo) {
		return 0
	}
	return int(math.Ceil(hi.Sub(lo).Hours()/24)) + 1
}

// LeaveDays sums the overlap of every interval with the given month.
func LeaveDays(intervals []LeaveInterval, year int, month time.Month) int {
	from, to := MonthBounds(year, month)
	total := 0
	for _, iv := range intervals {
		total += OverlapDays(iv.Start, iv.End, from, to)
	}
	return total
}

// LeaveDeduction is leaveDays times basic/DaysPerMonth, rounded to cents.
func LeaveDeduction(basic decimal.Decimal, leaveDays int) decimal.Decimal {
	return basic.Mul(decimal.NewFromInt(int64(leaveDays))).DivRound(daysPerMonth, 2)
}

func Gross(c Components) decimal.Decimal {
	return c.Basic.Add(c.HRA).Add(c.DA).Add(c.Allowances)
}

// Net may be negative.
func Net(c Components, leaveDeduction decimal.Decimal) decimal.Decimal {
	deductions := c.PF.Add(c.Tax).Add(c.OtherDeductions).Add(leaveDeduction)
	return Gross(c).Sub(deductions)
}

func validateComponents(c Components, v *apperr.ValidationError) {
	if !c.Basic.IsPositive() {
		v.Add("basic", "must be greater than 0")
	}
	others := []struct {
		field string
		value decimal.Decimal
	}{
		{"hra", c.HRA},
		{"da", c.DA},
		{"allowances", c.Allowances},
		{"pf", c.PF},
		{"tax", c.Tax},
		{"otherDeductions", c.OtherDeductions},
	}
	for _, o := range others {
		if o.value.IsNegative() {
			v.Add(o.field, "must not be negative")
		}
	}
}

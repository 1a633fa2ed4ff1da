package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hrdesk/internal/domain/apperr"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthBounds(t *testing.T) {
	from, to := MonthBounds(2024, time.February)
	if !from.Equal(day(2024, time.February, 1)) || !to.Equal(day(2024, time.February, 29)) {
		t.Fatalf("unexpected bounds %v - %v", from, to)
	}
	_, dec := MonthBounds(2023, time.December)
	if !dec.Equal(day(2023, time.December, 31)) {
		t.Fatalf("unexpected december end %v", dec)
	}
}

func TestLeaveDaysAcrossMonthBoundary(t *testing.T) {
	intervals := []LeaveInterval{{Start: day(2024, time.January, 30), End: day(2024, time.February, 2)}}

	if got := LeaveDays(intervals, 2024, time.January); got != 2 {
		t.Fatalf("expected 2 days in January, got %d", got)
	}
	if got := LeaveDays(intervals, 2024, time.February); got != 2 {
		t.Fatalf("expected 2 days in February, got %d", got)
	}
	if got := LeaveDays(intervals, 2024, time.March); got != 0 {
		t.Fatalf("expected 0 days in March, got %d", got)
	}
}

func TestLeaveDaysIgnoresIntervalOrder(t *testing.T) {
	a := LeaveInterval{Start: day(2024, time.March, 4), End: day(2024, time.March, 6)}
	b := LeaveInterval{Start: day(2024, time.February, 27), End: day(2024, time.March, 1)}

	first := LeaveDays([]LeaveInterval{a, b}, 2024, time.March)
	second := LeaveDays([]LeaveInterval{b, a}, 2024, time.March)
	if first != 4 || second != 4 {
		t.Fatalf("expected 4 days either way, got %d and %d", first, second)
	}
}

func TestOverlapSingleDay(t *testing.T) {
	from, to := MonthBounds(2024, time.May)
	if got := OverlapDays(day(2024, time.May, 31), day(2024, time.June, 3), from, to); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := OverlapDays(day(2024, time.April, 1), day(2024, time.April, 30), from, to); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestLeaveDeduction(t *testing.T) {
	cases := []struct {
		basic string
		days  int
		want  string
	}{
		{"30000", 3, "3000"},
		{"25000", 1, "833.33"},
		{"25000", 2, "1666.67"},
		{"30000", 0, "0"},
	}
	for _, tc := range cases {
		got := LeaveDeduction(decimal.RequireFromString(tc.basic), tc.days)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("basic %s days %d: expected %s, got %s", tc.basic, tc.days, tc.want, got)
		}
	}
}

func TestGrossAndNet(t *testing.T) {
	c := Components{
		Basic:           decimal.NewFromInt(30000),
		HRA:             decimal.NewFromInt(12000),
		DA:              decimal.NewFromInt(3000),
		Allowances:      decimal.NewFromInt(2000),
		PF:              decimal.NewFromInt(3600),
		Tax:             decimal.NewFromInt(4000),
		OtherDeductions: decimal.NewFromInt(400),
	}
	if got := Gross(c); !got.Equal(decimal.NewFromInt(47000)) {
		t.Fatalf("expected gross 47000, got %s", got)
	}
	if got := Net(c, decimal.NewFromInt(3000)); !got.Equal(decimal.NewFromInt(36000)) {
		t.Fatalf("expected net 36000, got %s", got)
	}
}

func TestNetIsNotClamped(t *testing.T) {
	c := Components{Basic: decimal.NewFromInt(1000), Tax: decimal.NewFromInt(900)}
	if got := Net(c, decimal.NewFromInt(500)); !got.Equal(decimal.NewFromInt(-400)) {
		t.Fatalf("expected -400, got %s", got)
	}
}

func TestValidateComponents(t *testing.T) {
	v := &apperr.ValidationError{}
	validateComponents(Components{Basic: decimal.Zero, PF: decimal.NewFromInt(-1)}, v)
	if len(v.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", v.Issues)
	}

	ok := &apperr.ValidationError{}
	validateComponents(Components{Basic: decimal.NewFromInt(1)}, ok)
	if ok.Err() != nil {
		t.Fatalf("expected no issues, got %v", ok.Err())
	}
}

package leave

import (
	"errors"
	"testing"
	"time"

	"hrdesk/internal/domain/apperr"
)

func TestCalculateDays(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	days, err := CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}

	end = time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	days, err = CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %v", days)
	}
}

func TestCalculateDaysRoundsPartialDaysUp(t *testing.T) {
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 11, 17, 0, 0, 0, time.UTC)

	days, err := CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %v", days)
	}
}

func TestCalculateDaysInvalid(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)

	_, err := CalculateDays(start, end)
	if err == nil {
		t.Fatal("expected error for invalid range")
	}
}

func TestClampedDeduct(t *testing.T) {
	if got := ClampedDeduct(12, 5); got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if got := ClampedDeduct(ClampedDeduct(12, 5), 10); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestValidateSubmit(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	days, err := ValidateSubmit(SubmitInput{LeaveType: TypeCasual, StartDate: day(3), EndDate: day(7), Reason: "trip"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days, got %v", days)
	}

	cases := []struct {
		name  string
		in    SubmitInput
		field string
	}{
		{"unknown type", SubmitInput{LeaveType: "study", StartDate: day(3), EndDate: day(3), Reason: "x"}, "leaveType"},
		{"blank reason", SubmitInput{LeaveType: TypeSick, StartDate: day(3), EndDate: day(3), Reason: ""}, "reason"},
		{"end before start", SubmitInput{LeaveType: TypeSick, StartDate: day(5), EndDate: day(3), Reason: "x"}, "endDate"},
		{"missing start", SubmitInput{LeaveType: TypeSick, EndDate: day(3), Reason: "x"}, "startDate"},
		{"span over a year", SubmitInput{LeaveType: TypeUnpaid, StartDate: day(3), EndDate: day(3).AddDate(1, 0, 1), Reason: "x"}, "endDate"},
		{"centuries", SubmitInput{LeaveType: TypeUnpaid, StartDate: day(3), EndDate: day(3).AddDate(300, 0, 0), Reason: "x"}, "endDate"},
	}
	for _, tc := range cases {
		_, err := ValidateSubmit(tc.in)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) || ve.Issues[0].Field != tc.field {
			t.Fatalf("%s: expected issue on %s, got %v", tc.name, tc.field, err)
		}
	}
}

func TestValidateSubmitAcceptsFullYear(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	days, err := ValidateSubmit(SubmitInput{LeaveType: TypeUnpaid, StartDate: start, EndDate: start.AddDate(0, 0, MaxRequestDays-1), Reason: "sabbatical"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != MaxRequestDays {
		t.Fatalf("expected %d days, got %v", MaxRequestDays, days)
	}
}

func TestNormalizeSubmitTruncatesToDate(t *testing.T) {
	in := normalizeSubmit(SubmitInput{
		LeaveType: " Casual ",
		StartDate: time.Date(2025, 3, 3, 15, 4, 0, 0, time.UTC),
		Reason:    "  rest ",
	})
	if in.LeaveType != TypeCasual || in.Reason != "rest" {
		t.Fatalf("unexpected normalization: %+v", in)
	}
	if in.StartDate.Hour() != 0 {
		t.Fatalf("expected midnight, got %v", in.StartDate)
	}
}

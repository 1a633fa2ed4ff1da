package shared

import "time"

const dateLayout = "2006-01-02"

// ParseDate reads a calendar day. Timestamps are accepted and cut to their own local date,
// so "2025-03-10T23:30:00+05:00" is March 10. The result is midnight UTC.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if day, err := time.Parse(dateLayout, value); err == nil {
		return day, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseMonth accepts a month name ("march", "MARCH"), its three-letter
// abbreviation or its number.
func ParseMonth(raw string) (time.Month, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("month is required")
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month number %d out of range", n)
		}
		return time.Month(n), nil
	}
	// Casers keep state, so each call gets its own.
	name := cases.Title(language.English).String(value)
	for m := time.January; m <= time.December; m++ {
		if m.String() == name || m.String()[:3] == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", raw)
}

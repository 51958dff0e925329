package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// HourOf extracts the hour component of an HH:MM or HH:MM:SS time string.
// Malformed values return an error so callers can skip them instead of
// rendering a bogus column.
func HourOf(value string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(value), ":")
	hour, err := strconv.Atoi(head)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("timeutil: unparseable hour in %q", value)
	}
	return hour, nil
}

// DaysInclusive counts calendar days between two dates, both ends included.
func DaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

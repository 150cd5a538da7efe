package utils

import "time"

// DateLayout is the calendar date format used in snapshot descriptions
const DateLayout = "2006-01-02"

// FormatDate formats t as YYYY-MM-DD in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// CalculateElapsedDays calculates the number of whole days between since and now
func CalculateElapsedDays(since, now time.Time) int {
	return int(now.Sub(since).Hours() / 24)
}

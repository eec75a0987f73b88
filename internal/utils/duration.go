package utils

import (
	"fmt"
	"time"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
)

// FormatElapsed renders how long ago t was, using the largest applicable
// unit. Elapsed spans of a year or more render as whole years only when the
// month count divides evenly by twelve; otherwise the month count is shown.
// Anything under a minute renders as the empty string.
func FormatElapsed(t time.Time) string {
	return FormatDuration(time.Since(t))
}

// FormatDuration is the pure form of FormatElapsed.
func FormatDuration(elapsed time.Duration) string {
	months := int(elapsed / month)
	days := int(elapsed / day)
	hours := int(elapsed / time.Hour)
	minutes := int(elapsed / time.Minute)

	switch {
	case months >= 12 && months%12 == 0:
		return pluralize(months/12, "year")
	case months > 0:
		return pluralize(months, "month")
	case days > 0:
		return pluralize(days, "day")
	case hours > 0:
		return pluralize(hours, "hour")
	case minutes > 0:
		return pluralize(minutes, "minute")
	default:
		return ""
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

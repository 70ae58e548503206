package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "2h  3m  5s", dropping leading
// zero units ("3m  5s", "5s").
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if int(d.Minutes()) == 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	if hours == 0 {
		return fmt.Sprintf("%dm %2ds", minutes, seconds)
	}
	return fmt.Sprintf("%dh %2dm %2ds", hours, minutes, seconds)
}

// FormatDateTime renders an instant as "2006-01-02 15:04" in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}

// FormatTime renders the time of day as "15:04" in loc.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// FormatDay renders a calendar day as "Monday 2 January 2006" in loc.
func FormatDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Monday 2 January 2006")
}

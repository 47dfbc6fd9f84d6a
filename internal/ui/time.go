package ui

import (
	"fmt"
	"time"

	"github.com/amonks/toodle/schedule"
)

// FormatDue renders a due instant in now's zone followed by its distance
// from now, like "Jan 2, 2024, 9:00 AM (in 23h)". It returns "" for nil.
func FormatDue(at *time.Time, now time.Time) string {
	if at == nil {
		return ""
	}
	local := at.In(now.Location())
	return fmt.Sprintf("%s (%s)", local.Format(schedule.DisplayLayout), FormatRelative(*at, now))
}

// FormatRelative returns "in 2h", "2h ago", or "now" when at is within a
// minute of now.
func FormatRelative(at time.Time, now time.Time) string {
	diff := at.Sub(now)
	switch {
	case diff > -time.Minute && diff < time.Minute:
		return "now"
	case diff > 0:
		return "in " + FormatDurationShort(diff)
	default:
		return FormatDurationShort(-diff) + " ago"
	}
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

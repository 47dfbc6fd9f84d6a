package schedule

import "time"

// Class partitions scheduled instants for filtering.
type Class int

const (
	ClassNone Class = iota
	ClassPastDue
	ClassToday
	ClassTomorrow
)

func (c Class) String() string {
	switch c {
	case ClassPastDue:
		return "past-due"
	case ClassToday:
		return "today"
	case ClassTomorrow:
		return "tomorrow"
	default:
		return "none"
	}
}

// IsPastDue reports whether at is set and strictly before now.
func IsPastDue(at *time.Time, now time.Time) bool {
	return at != nil && at.Before(now)
}

// IsDueToday reports whether at falls on now's calendar date, in now's
// location. Past-due instants are not excluded.
func IsDueToday(at *time.Time, now time.Time) bool {
	if at == nil {
		return false
	}
	return sameDate(at.In(now.Location()), now)
}

// IsDueTomorrow reports whether at falls on the calendar date after now's.
func IsDueTomorrow(at *time.Time, now time.Time) bool {
	if at == nil {
		return false
	}
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return sameDate(at.In(now.Location()), tomorrow)
}

// Classify places at into at most one class. Today and tomorrow exclude
// instants that are already past due.
func Classify(at *time.Time, now time.Time) Class {
	switch {
	case IsPastDue(at, now):
		return ClassPastDue
	case IsDueToday(at, now):
		return ClassToday
	case IsDueTomorrow(at, now):
		return ClassTomorrow
	default:
		return ClassNone
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DisplayLayout renders a medium date followed by a short time.
const DisplayLayout = "Jan 2, 2006, 3:04 PM"

// Format renders at in the local zone for display. It returns "" for nil.
func Format(at *time.Time) string {
	if at == nil {
		return ""
	}
	return at.Local().Format(DisplayLayout)
}

// isoLayout matches the millisecond UTC form used in persisted records.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatISO renders t as a UTC ISO-8601 timestamp with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseISO parses an ISO-8601 timestamp. It reports false for anything that
// does not describe a valid instant.
func ParseISO(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

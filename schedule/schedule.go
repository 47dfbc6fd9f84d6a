// Package schedule extracts natural-language due dates from free-form todo
// text and classifies the resulting instants relative to a reference time.
package schedule

import (
	"strings"
	"time"

	internalstrings "github.com/amonks/toodle/internal/strings"
)

const (
	// DefaultHour is the hour assigned when a phrase names a date but no time.
	DefaultHour = 17
	// EveningHour replaces DefaultHour when the phrase mentions "tonight".
	// It is also the hour of "evening" and "night".
	EveningHour = 20
	// MorningHour and AfternoonHour are the hours of "morning" and
	// "afternoon".
	MorningHour   = 9
	AfternoonHour = 15
)

// Result is the outcome of parsing a piece of todo text.
//
// ScheduledAt and ScheduleText are either both nil or both set.
type Result struct {
	// CleanedText is the input with the recognized phrase removed and
	// whitespace tidied.
	CleanedText string
	// ScheduledAt is the resolved due instant, in UTC.
	ScheduledAt *time.Time
	// ScheduleText is the recognized phrase, trimmed, with its original casing.
	ScheduleText *string
}

// Scheduled reports whether a phrase was recognized.
func (r Result) Scheduled() bool {
	return r.ScheduledAt != nil
}

// Parser resolves schedule phrases. The zero value assigns midnight to
// date-only phrases; use NewParser for the usual defaults.
type Parser struct {
	DefaultHour int
	EveningHour int
}

// NewParser returns a Parser using DefaultHour and EveningHour.
func NewParser() Parser {
	return Parser{DefaultHour: DefaultHour, EveningHour: EveningHour}
}

// Parse runs the default parser over input.
func Parse(input string, ref time.Time) Result {
	return NewParser().Parse(input, ref)
}

// Parse finds the first date or time phrase in input and resolves it against
// ref. Ambiguous phrases resolve forward from ref. All wall-clock arithmetic
// happens in ref's location.
func (p Parser) Parse(input string, ref time.Time) Result {
	c, ok := findPhrase(input, ref)
	if !ok {
		return Result{CleanedText: internalstrings.TidyPunctuation(input)}
	}

	phrase := strings.TrimSpace(input[c.start:c.end])
	at := p.resolve(c, phrase, ref).UTC()
	return Result{
		CleanedText:  internalstrings.TidyPunctuation(input[:c.start] + input[c.end:]),
		ScheduledAt:  &at,
		ScheduleText: &phrase,
	}
}

func (p Parser) resolve(c component, phrase string, ref time.Time) time.Time {
	loc := ref.Location()
	if c.exact {
		t := c.instant.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	}

	switch {
	case c.has(kindDate) && c.has(kindTime):
		hour, minute := p.clock(c)
		t := time.Date(c.year, c.month, c.day, hour, minute, 0, 0, loc)
		if c.floating && t.Before(ref) {
			t = t.AddDate(0, 0, 7)
		}
		return t
	case c.has(kindDate):
		hour := p.DefaultHour
		if internalstrings.ContainsFold(phrase, "tonight") {
			hour = p.EveningHour
		}
		return time.Date(c.year, c.month, c.day, hour, 0, 0, 0, loc)
	default:
		hour, minute := p.clock(c)
		y, m, d := ref.Date()
		t := time.Date(y, m, d, hour, minute, 0, 0, loc)
		if t.Before(ref) {
			t = time.Date(y, m, d+1, hour, minute, 0, 0, loc)
		}
		return t
	}
}

// clock returns the wall-clock time of a component that carries a time.
// A bare hour reads as afternoon or evening when the phrase implies it, so
// "tonight at 9" is 21:00.
func (p Parser) clock(c component) (hour, minute int) {
	hour, minute = c.hour, c.minute
	switch c.daypart {
	case "morning":
		hour, minute = MorningHour, 0
	case "afternoon":
		hour, minute = AfternoonHour, 0
	case "evening", "night":
		hour, minute = p.EveningHour, 0
	}
	if c.bareHour && c.pm && hour < 12 {
		hour += 12
	}
	return hour, minute
}

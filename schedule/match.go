package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type kind uint8

const (
	kindDate kind = 1 << iota
	kindTime
)

// component is one recognized span of input. A span that carries an exact
// instant (such as "in 20 minutes") needs no further resolution.
type component struct {
	start, end int
	kinds      kind

	year  int
	month time.Month
	day   int

	hour, minute int

	// daypart is a rough time such as "morning", resolved by the Parser.
	daypart string
	// bareHour marks an hour given without am/pm ("at 9").
	bareHour bool
	// pm is set by phrases that imply the second half of the day.
	pm bool
	// floating marks a weekday without next/last, which rolls forward a
	// week when the resolved instant is already behind ref.
	floating bool
	// attached components only count when they follow a date phrase.
	attached bool

	exact   bool
	instant time.Time
}

func (c component) has(k kind) bool {
	return c.kinds&k != 0
}

func (c *component) setDate(t time.Time) {
	c.kinds |= kindDate
	c.year, c.month, c.day = t.Date()
}

func (c *component) setTime(hour, minute int) {
	c.kinds |= kindTime
	c.hour, c.minute = hour, minute
}

type matcher struct {
	name     string
	kind     kind
	re       *regexp.Regexp
	anchored *regexp.Regexp
	// build interprets the lowercased submatches. It returns false when the
	// text looks like a phrase but does not describe a real date or time.
	build func(groups []string, ref time.Time) (component, bool)
}

func newMatcher(name string, k kind, pattern string, build func([]string, time.Time) (component, bool)) matcher {
	return matcher{
		name:     name,
		kind:     k,
		re:       regexp.MustCompile(`(?i)` + pattern),
		anchored: regexp.MustCompile(`(?i)^(?:` + pattern + `)`),
		build:    build,
	}
}

const (
	monthPattern   = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	weekdayPattern = `monday|mon|tuesday|tues|tue|wednesday|wed|thursday|thurs|thur|thu|friday|fri|saturday|sat|sunday|sun`
	countPattern   = `\d+|an?|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|few|couple(?:\s+of)?`
	unitPattern    = `minutes?|mins?|hours?|hrs?|days?|weeks?|wks?|months?|years?|yrs?`
	atPattern      = `(?:\bat\s+|@\s*)?`
)

var matchers = []matcher{
	newMatcher("relative", kindDate|kindTime,
		`\bin\s+(`+countPattern+`)\s+(`+unitPattern+`)\b`,
		buildRelative),
	newMatcher("casual", kindDate,
		`\b(?:the\s+)?(day\s+after\s+tomorrow|today|tonight|tomorrow|tmrw|tmr|yesterday)\b`,
		buildCasual),
	newMatcher("period", kindDate,
		`\b(next|last)\s+(week|month|year)\b`,
		buildPeriod),
	newMatcher("weekday", kindDate,
		`\b(?:(on|this|next|last)\s+)?(`+weekdayPattern+`)\b`,
		buildWeekday),
	newMatcher("month-day", kindDate,
		`\b(?:on\s+)?(?:(`+monthPattern+`)\.?\s+(\d{1,2})(?:st|nd|rd|th)?|(?:the\s+)?(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(`+monthPattern+`)\.?)(?:,?\s+(\d{4}))?`,
		buildMonthDay),
	newMatcher("iso-date", kindDate,
		`\b(?:on\s+)?(\d{4})-(\d{2})-(\d{2})\b`,
		buildISODate),
	newMatcher("slash-date", kindDate,
		`\b(?:on\s+)?(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`,
		buildSlashDate),
	newMatcher("meridiem", kindTime,
		atPattern+`\b(\d{1,2})(?:[:.]([0-5]\d))?\s*(a\.m\.|p\.m\.|am|pm)`,
		buildMeridiem),
	newMatcher("clock", kindTime,
		atPattern+`\b([01]?\d|2[0-3]):([0-5]\d)\b`,
		buildClock),
	newMatcher("named-time", kindTime,
		atPattern+`\b(noon|midday|midnight)\b`,
		buildNamedTime),
	newMatcher("bare-hour", kindTime,
		`\bat\s+([01]?\d|2[0-3])\b`,
		buildBareHour),
	newMatcher("daypart", kindTime,
		`\b(this\s+|in\s+the\s+|at\s+)?(morning|afternoon|evening|night)\b`,
		buildDaypart),
}

// findPhrase returns the earliest phrase in input. When two phrases start at
// the same offset the longer one wins. A date immediately followed by a time
// (or a time by a date) is merged into a single phrase.
func findPhrase(input string, ref time.Time) (component, bool) {
	var best component
	found := false
	for _, m := range matchers {
		c, ok := m.first(input, ref)
		if !ok {
			continue
		}
		if !found || c.start < best.start || (c.start == best.start && c.end > best.end) {
			best = c
			found = true
		}
	}
	if !found {
		return component{}, false
	}
	if best.exact {
		return best, true
	}

	var want kind
	switch {
	case !best.has(kindTime):
		want = kindTime
	case !best.has(kindDate):
		want = kindDate
	default:
		return best, true
	}
	if next, ok := extend(input, best.end, want, ref); ok {
		best = merge(best, next)
	}
	// "tomorrow night at 9"
	if best.daypart != "" && best.has(kindDate) {
		if next, ok := extend(input, best.end, kindTime, ref); ok && next.daypart == "" {
			best = merge(best, next)
		}
	}
	return best, true
}

func (m matcher) first(input string, ref time.Time) (component, bool) {
	for _, loc := range m.re.FindAllStringSubmatchIndex(input, -1) {
		if !endsAtBoundary(input, loc[1]) {
			continue
		}
		c, ok := m.build(groups(input, loc), ref)
		if !ok || c.attached {
			continue
		}
		c.start, c.end = loc[0], loc[1]
		return c, true
	}
	return component{}, false
}

// extend looks for a phrase of kind want starting at pos, after any spaces or
// commas.
func extend(input string, pos int, want kind, ref time.Time) (component, bool) {
	start := pos
	for start < len(input) && (input[start] == ' ' || input[start] == ',' || input[start] == '\t') {
		start++
	}
	if start == pos || start >= len(input) {
		return component{}, false
	}

	var best component
	found := false
	rest := input[start:]
	for _, m := range matchers {
		if m.kind != want {
			continue
		}
		loc := m.anchored.FindStringSubmatchIndex(rest)
		if loc == nil || !endsAtBoundary(input, start+loc[1]) {
			continue
		}
		c, ok := m.build(groups(rest, loc), ref)
		if !ok {
			continue
		}
		c.start, c.end = start+loc[0], start+loc[1]
		if !found || c.end > best.end {
			best = c
			found = true
		}
	}
	return best, found
}

func merge(a, b component) component {
	out := a
	if b.has(kindDate) {
		out.kinds |= kindDate
		out.year, out.month, out.day = b.year, b.month, b.day
	}
	if b.has(kindTime) {
		out.setTime(b.hour, b.minute)
		out.daypart = b.daypart
		out.bareHour = b.bareHour
	}
	out.pm = a.pm || b.pm
	out.floating = a.floating || b.floating
	if b.start < out.start {
		out.start = b.start
	}
	if b.end > out.end {
		out.end = b.end
	}
	return out
}

func groups(input string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		out[i] = strings.ToLower(input[start:end])
	}
	return out
}

func endsAtBoundary(input string, end int) bool {
	if end >= len(input) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(input[end:])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func buildRelative(g []string, ref time.Time) (component, bool) {
	n, ok := parseCount(g[1])
	if !ok {
		return component{}, false
	}
	var c component
	unit := strings.TrimSuffix(g[2], "s")
	switch unit {
	case "minute", "min":
		c.exact, c.instant = true, ref.Add(time.Duration(n)*time.Minute)
		c.kinds = kindDate | kindTime
	case "hour", "hr":
		c.exact, c.instant = true, ref.Add(time.Duration(n)*time.Hour)
		c.kinds = kindDate | kindTime
	case "day":
		c.setDate(ref.AddDate(0, 0, n))
	case "week", "wk":
		c.setDate(ref.AddDate(0, 0, 7*n))
	case "month":
		c.setDate(ref.AddDate(0, n, 0))
	case "year", "yr":
		c.setDate(ref.AddDate(n, 0, 0))
	default:
		return component{}, false
	}
	return c, true
}

var countWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11,
	"twelve": 12, "few": 3, "couple": 2,
}

func parseCount(s string) (int, bool) {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSuffix(s, " of")
	if n, ok := countWords[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 1000 {
		return 0, false
	}
	return n, true
}

func buildCasual(g []string, ref time.Time) (component, bool) {
	var c component
	switch word := strings.Join(strings.Fields(g[1]), " "); word {
	case "today":
		c.setDate(ref)
	case "tonight":
		c.setDate(ref)
		c.pm = true
	case "tomorrow", "tmrw", "tmr":
		c.setDate(ref.AddDate(0, 0, 1))
	case "day after tomorrow":
		c.setDate(ref.AddDate(0, 0, 2))
	case "yesterday":
		c.setDate(ref.AddDate(0, 0, -1))
	default:
		return component{}, false
	}
	return c, true
}

func buildPeriod(g []string, ref time.Time) (component, bool) {
	sign := 1
	if g[1] == "last" {
		sign = -1
	}
	var c component
	switch g[2] {
	case "week":
		c.setDate(ref.AddDate(0, 0, 7*sign))
	case "month":
		c.setDate(ref.AddDate(0, sign, 0))
	case "year":
		c.setDate(ref.AddDate(sign, 0, 0))
	default:
		return component{}, false
	}
	return c, true
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tues": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thurs": time.Thursday, "thur": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

func buildWeekday(g []string, ref time.Time) (component, bool) {
	modifier, name := g[1], g[2]
	target, ok := weekdays[name]
	if !ok {
		return component{}, false
	}
	// Bare abbreviations are ordinary words too often ("sat", "sun", "wed").
	if modifier == "" && !strings.HasSuffix(name, "day") {
		return component{}, false
	}

	diff := (int(target) - int(ref.Weekday()) + 7) % 7
	switch modifier {
	case "next":
		if diff == 0 {
			diff = 7
		}
	case "last":
		diff -= 7
	}
	var c component
	c.setDate(ref.AddDate(0, 0, diff))
	c.floating = modifier != "next" && modifier != "last"
	return c, true
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func buildMonthDay(g []string, ref time.Time) (component, bool) {
	name, dayText := g[1], g[2]
	if name == "" {
		dayText, name = g[3], g[4]
	}
	if len(name) < 3 {
		return component{}, false
	}
	month, ok := monthsByPrefix[name[:3]]
	if !ok {
		return component{}, false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return component{}, false
	}
	year := 0
	if g[5] != "" {
		year, _ = strconv.Atoi(g[5])
	}
	return calendarDate(year, month, day, ref)
}

func buildISODate(g []string, ref time.Time) (component, bool) {
	year, _ := strconv.Atoi(g[1])
	month, _ := strconv.Atoi(g[2])
	day, _ := strconv.Atoi(g[3])
	if year == 0 {
		return component{}, false
	}
	return calendarDate(year, time.Month(month), day, ref)
}

func buildSlashDate(g []string, ref time.Time) (component, bool) {
	month, _ := strconv.Atoi(g[1])
	day, _ := strconv.Atoi(g[2])
	year := 0
	if g[3] != "" {
		year, _ = strconv.Atoi(g[3])
		if len(g[3]) == 2 {
			year += 2000
		}
	}
	return calendarDate(year, time.Month(month), day, ref)
}

// calendarDate validates a calendar date. A zero year means the next
// occurrence on or after ref's date.
func calendarDate(year int, month time.Month, day int, ref time.Time) (component, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return component{}, false
	}
	explicit := year != 0
	if !explicit {
		year = ref.Year()
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
	if !explicit {
		ry, rm, rd := ref.Date()
		today := time.Date(ry, rm, rd, 0, 0, 0, 0, ref.Location())
		if t.Before(today) {
			year++
			t = time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
		}
	}
	if t.Month() != month || t.Day() != day {
		return component{}, false
	}
	var c component
	c.setDate(t)
	return c, true
}

func buildMeridiem(g []string, _ time.Time) (component, bool) {
	hour, err := strconv.Atoi(g[1])
	if err != nil || hour < 1 || hour > 12 {
		return component{}, false
	}
	minute := 0
	if g[2] != "" {
		minute, _ = strconv.Atoi(g[2])
	}
	pm := strings.HasPrefix(g[3], "p")
	switch {
	case pm && hour != 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}
	var c component
	c.setTime(hour, minute)
	return c, true
}

func buildClock(g []string, _ time.Time) (component, bool) {
	hour, err := strconv.Atoi(g[1])
	if err != nil {
		return component{}, false
	}
	minute, err := strconv.Atoi(g[2])
	if err != nil {
		return component{}, false
	}
	var c component
	c.setTime(hour, minute)
	return c, true
}

func buildNamedTime(g []string, _ time.Time) (component, bool) {
	var c component
	switch g[1] {
	case "noon", "midday":
		c.setTime(12, 0)
	case "midnight":
		c.setTime(0, 0)
	default:
		return component{}, false
	}
	return c, true
}

func buildBareHour(g []string, _ time.Time) (component, bool) {
	hour, err := strconv.Atoi(g[1])
	if err != nil {
		return component{}, false
	}
	var c component
	c.setTime(hour, 0)
	c.bareHour = hour >= 1 && hour < 12
	return c, true
}

// buildDaypart recognizes "morning", "this evening", "at night" and so on.
// Without a leading word the part of day only counts after a date, so that
// "movie night" stays plain text.
func buildDaypart(g []string, _ time.Time) (component, bool) {
	var c component
	c.kinds |= kindTime
	c.daypart = g[2]
	c.pm = g[2] != "morning"
	c.attached = g[1] == ""
	return c, true
}

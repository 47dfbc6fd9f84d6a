package todo

import (
	"regexp"
	"sort"
	"time"

	"github.com/amonks/toodle/schedule"
)

// Built-in filters select todos by schedule class rather than by tag. They
// cannot collide with user tags, which always start with '#'.
const (
	PastDueFilter  = "__PAST_DUE__"
	TodayFilter    = "__TODAY__"
	TomorrowFilter = "__TOMORROW__"
)

// BuiltinFilters returns the built-in filters in display order.
func BuiltinFilters() []string {
	return []string{PastDueFilter, TodayFilter, TomorrowFilter}
}

// IsBuiltinFilter reports whether tag names a built-in filter.
func IsBuiltinFilter(tag string) bool {
	switch tag {
	case PastDueFilter, TodayFilter, TomorrowFilter:
		return true
	}
	return false
}

// FilterLabel returns a human-readable name for a tag or built-in filter.
func FilterLabel(tag string) string {
	switch tag {
	case PastDueFilter:
		return "Past due"
	case TodayFilter:
		return "Today"
	case TomorrowFilter:
		return "Tomorrow"
	default:
		return tag
	}
}

var tagPattern = regexp.MustCompile(`#\w+`)

// ExtractTags returns the distinct #tags in text, in order of appearance.
// Tags are case-sensitive.
func ExtractTags(text string) []string {
	matches := tagPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, tag := range matches {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// TagSpans returns the byte offsets of every tag in text as [start, end)
// pairs.
func TagSpans(text string) [][]int {
	return tagPattern.FindAllStringIndex(text, -1)
}

// HasTag reports whether text contains exactly tag.
func HasTag(text, tag string) bool {
	for _, t := range tagPattern.FindAllString(text, -1) {
		if t == tag {
			return true
		}
	}
	return false
}

// AllTags returns the sorted union of tags across todos.
func AllTags(todos []Todo) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range todos {
		for _, tag := range ExtractTags(t.Text) {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// MatchesFilter reports whether t passes the tag or built-in filter. An
// empty filter matches everything. Today and tomorrow exclude past-due todos
// so the three built-in filters never overlap.
func MatchesFilter(t Todo, filter string, now time.Time) bool {
	switch filter {
	case "":
		return true
	case PastDueFilter:
		return schedule.IsPastDue(t.ScheduledAt, now)
	case TodayFilter:
		return schedule.IsDueToday(t.ScheduledAt, now) && !schedule.IsPastDue(t.ScheduledAt, now)
	case TomorrowFilter:
		return schedule.IsDueTomorrow(t.ScheduledAt, now) && !schedule.IsPastDue(t.ScheduledAt, now)
	default:
		return HasTag(t.Text, filter)
	}
}

// FilteredView applies the tag filter and then the completion filter. The
// result shares no slice storage with todos, which is never modified.
func FilteredView(todos []Todo, filter string, completion CompletionFilter, now time.Time) []Todo {
	view := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if !MatchesFilter(t, filter, now) {
			continue
		}
		if !completion.Keep(t.Completed) {
			continue
		}
		view = append(view, t)
	}
	return view
}

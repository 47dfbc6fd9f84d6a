// Package todo implements toodle's todo state engine: the ordered todo
// collection, selection and editing state, tag-filtered views, tag colors,
// and persistence to local storage.
package todo

import (
	"strings"
	"time"

	"github.com/amonks/toodle/internal/validation"
)

// Todo is a single entry in the canonical sequence.
//
// ScheduledAt and ScheduleText are either both nil or both set.
type Todo struct {
	ID        string
	Text      string
	Completed bool
	// Order is the todo's index in the canonical sequence.
	Order        int
	ScheduledAt  *time.Time
	ScheduleText *string
}

// Scheduled reports whether the todo has a due date.
func (t Todo) Scheduled() bool {
	return t.ScheduledAt != nil
}

// Tags returns the distinct tags in the todo's text, in order of appearance.
func (t Todo) Tags() []string {
	return ExtractTags(t.Text)
}

// EditableText rejoins the text and the recognized schedule phrase, so an
// edit starts from what the user typed.
func (t Todo) EditableText() string {
	if t.ScheduleText == nil || *t.ScheduleText == "" {
		return t.Text
	}
	if t.Text == "" {
		return *t.ScheduleText
	}
	return t.Text + " " + *t.ScheduleText
}

func (t Todo) clone() Todo {
	if t.ScheduledAt != nil {
		at := *t.ScheduledAt
		t.ScheduledAt = &at
	}
	if t.ScheduleText != nil {
		text := *t.ScheduleText
		t.ScheduleText = &text
	}
	return t
}

// CompletionFilter selects todos by completion state.
type CompletionFilter string

const (
	// FilterAll shows every todo.
	FilterAll CompletionFilter = "all"
	// FilterHideCompleted shows only open todos.
	FilterHideCompleted CompletionFilter = "hideCompleted"
	// FilterShowCompletedOnly shows only completed todos.
	FilterShowCompletedOnly CompletionFilter = "showCompletedOnly"
)

// ValidCompletionFilters returns all valid completion filter values.
func ValidCompletionFilters() []CompletionFilter {
	return []CompletionFilter{FilterAll, FilterHideCompleted, FilterShowCompletedOnly}
}

// IsValid returns true if the filter is a known value.
func (f CompletionFilter) IsValid() bool {
	for _, valid := range ValidCompletionFilters() {
		if f == valid {
			return true
		}
	}
	return false
}

// Keep reports whether a todo with the given completion state passes.
func (f CompletionFilter) Keep(completed bool) bool {
	switch f {
	case FilterHideCompleted:
		return !completed
	case FilterShowCompletedOnly:
		return completed
	default:
		return true
	}
}

// Toggle returns other when f is not already other, and FilterAll otherwise.
func (f CompletionFilter) Toggle(other CompletionFilter) CompletionFilter {
	if f == other {
		return FilterAll
	}
	return other
}

// ParseCompletionFilter parses a filter name, ignoring case.
func ParseCompletionFilter(value string) (CompletionFilter, error) {
	for _, valid := range ValidCompletionFilters() {
		if strings.EqualFold(value, string(valid)) {
			return valid, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidCompletionFilter, CompletionFilter(value), ValidCompletionFilters())
}

// NoEditing is the EditingIndex value when no todo is being edited.
const NoEditing = -1

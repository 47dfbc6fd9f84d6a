package todo

import (
	"errors"

	internalstrings "github.com/amonks/toodle/internal/strings"
)

var (
	// ErrTodoNotFound is returned when a todo reference matches nothing.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrAmbiguousTodoIDPrefix is returned when an ID prefix matches multiple todos.
	ErrAmbiguousTodoIDPrefix = errors.New("ambiguous todo ID prefix")

	// ErrInvalidCompletionFilter is returned for an unknown completion filter name.
	ErrInvalidCompletionFilter = errors.New("invalid completion filter")

	// ErrInvalidPosition is returned when a position is outside the list.
	ErrInvalidPosition = errors.New("position out of range")

	// ErrEmptyText is returned when todo text is blank.
	ErrEmptyText = errors.New("todo text is required")
)

// ValidateText rejects text that is empty once whitespace is collapsed.
func ValidateText(text string) error {
	if internalstrings.NormalizeWhitespace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

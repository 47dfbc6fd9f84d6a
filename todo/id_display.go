package todo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/toodle/internal/ids"
)

// IDIndex indexes todo IDs for prefix matching and display.
type IDIndex struct {
	ids []string
}

// NewIDIndex builds an IDIndex from a slice of todos.
func NewIDIndex(todos []Todo) IDIndex {
	todoIDs := make([]string, 0, len(todos))
	for _, todo := range todos {
		todoIDs = append(todoIDs, todo.ID)
	}
	return IDIndex{ids: ids.NormalizeUniqueIDs(todoIDs)}
}

// Resolve returns the full todo ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrTodoNotFound
	}

	match, found, ambiguous := ids.MatchPrefixNormalized(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTodoNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousTodoIDPrefix, prefix)
	}

	return match, nil
}

// PrefixLengths returns the shortest unique prefix length for each ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengthsNormalized(index.ids)
}

// ResolveRef finds a todo by reference: a 1-based position in todos, or an
// id prefix. Positions win when ref is a number in range.
func ResolveRef(todos []Todo, ref string) (Todo, error) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(todos) {
		return todos[n-1], nil
	}
	id, err := NewIDIndex(todos).Resolve(ref)
	if err != nil {
		return Todo{}, err
	}
	for _, t := range todos {
		if strings.EqualFold(t.ID, id) {
			return t, nil
		}
	}
	return Todo{}, fmt.Errorf("%w: %s", ErrTodoNotFound, ref)
}

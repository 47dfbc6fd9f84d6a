package todo

import (
	"fmt"
	"testing"
	"time"

	"github.com/amonks/toodle/internal/state"
	"github.com/amonks/toodle/schedule"
)

var testZone = time.FixedZone("EST", -5*60*60)

// Monday, January 1 2024, 10:00 local.
var testNow = time.Date(2024, time.January, 1, 10, 0, 0, 0, testZone)

func fixedClock() time.Time {
	return testNow
}

// sequentialIDs returns an id generator yielding id0, id1, ...
func sequentialIDs() func() string {
	next := 0
	return func() string {
		id := fmt.Sprintf("id%d", next)
		next++
		return id
	}
}

func newTestEngine() Engine {
	return Engine{
		Now:    fixedClock,
		NewID:  sequentialIDs(),
		Parser: schedule.NewParser(),
	}
}

// seedState returns a state holding one todo per text, with ids id0, id1, ...
func seedState(texts ...string) State {
	st := NewState()
	for i, text := range texts {
		st.Todos = append(st.Todos, Todo{ID: fmt.Sprintf("id%d", i), Text: text, Order: i})
	}
	st.TagColors = ReconcileTagColors(nil, st.AllTags())
	return st
}

func newTestStore(t *testing.T) (*Store, *state.Store) {
	t.Helper()

	backend := state.NewStore(t.TempDir())
	s, err := Open(OpenOptions{Backend: backend, Now: fixedClock, NewID: sequentialIDs()})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s, backend
}

func todoIDs(todos []Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func assertDenseOrder(t *testing.T, todos []Todo) {
	t.Helper()
	for i, todo := range todos {
		if todo.Order != i {
			t.Fatalf("expected todo %s at %d to have order %d, got %d", todo.ID, i, i, todo.Order)
		}
	}
}

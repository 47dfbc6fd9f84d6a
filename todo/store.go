package todo

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amonks/toodle/internal/ids"
	"github.com/amonks/toodle/internal/logging"
	"github.com/amonks/toodle/internal/state"
	"github.com/amonks/toodle/schedule"
)

// Backend is the key/value storage the Store mirrors its state into.
type Backend interface {
	LoadRaw(key string) ([]byte, error)
	Save(key string, v any) error
	Delete(key string) error
}

// Store owns a State and applies engine operations to it one at a time.
// After every change the state is written behind to the Backend. Write
// failures are logged and kept for PersistError; they never undo the
// in-memory change.
type Store struct {
	mu         sync.Mutex
	engine     Engine
	state      State
	backend    Backend
	logger     *log.Logger
	persistErr error
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Backend overrides the storage. If nil, a state.Store in Dir is used.
	Backend Backend

	// Dir is the data directory used when Backend is nil.
	Dir string

	// Logger receives diagnostics. If nil, logs are discarded.
	Logger *log.Logger

	// Now is the clock used for parsing and date filters. Defaults to time.Now.
	Now func() time.Time

	// NewID generates todo ids. Defaults to ULIDs.
	NewID func() string

	// Parser resolves schedule phrases. Defaults to schedule.NewParser().
	Parser *schedule.Parser
}

// Open loads the persisted state and returns a Store. Malformed records are
// skipped with a warning; only unreadable storage is an error.
func Open(opts OpenOptions) (*Store, error) {
	backend := opts.Backend
	if backend == nil {
		if opts.Dir == "" {
			return nil, fmt.Errorf("open todo store: no data directory")
		}
		backend = state.NewStore(opts.Dir)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	engine := NewEngine()
	if opts.Now != nil {
		engine.Now = opts.Now
	}
	if opts.NewID != nil {
		engine.NewID = opts.NewID
	} else {
		engine.NewID = ids.NewGenerator(engine.Now).New
	}
	if opts.Parser != nil {
		engine.Parser = *opts.Parser
	}

	s := &Store{engine: engine, backend: backend, logger: logger}
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	s.state = st
	return s, nil
}

func (s *Store) load() (State, error) {
	st := NewState()

	raw, err := s.backend.LoadRaw(TodosKey)
	if err != nil {
		return st, fmt.Errorf("load todos: %w", err)
	}
	if raw != nil {
		todos, problems, err := DecodeTodos(raw)
		if err != nil {
			s.logger.Warn("ignoring unreadable todos", "err", err)
		}
		for _, problem := range problems {
			s.logger.Warn("skipping todo record", "problem", problem)
		}
		st.Todos = todos
	}

	stored, err := s.backend.LoadRaw(CompletionFilterKey)
	if err != nil {
		return st, fmt.Errorf("load completion filter: %w", err)
	}
	legacy, err := s.backend.LoadRaw(LegacyHideCompletedKey)
	if err != nil {
		return st, fmt.Errorf("load legacy filter: %w", err)
	}
	st.CompletionFilter = migrateCompletionFilter(stored, legacy)
	if legacy != nil {
		s.logger.Info("migrating legacy completion filter", "filter", st.CompletionFilter)
		s.record(s.backend.Save(CompletionFilterKey, string(st.CompletionFilter)), CompletionFilterKey)
		s.record(s.backend.Delete(LegacyHideCompletedKey), LegacyHideCompletedKey)
	}

	colors := map[string]int{}
	if raw, err := s.backend.LoadRaw(TagColorMapKey); err != nil {
		return st, fmt.Errorf("load tag colors: %w", err)
	} else if raw != nil {
		if err := decodeColorMap(raw, &colors); err != nil {
			s.logger.Warn("ignoring unreadable tag colors", "err", err)
			colors = map[string]int{}
		}
	}
	st.TagColors = ReconcileTagColors(colors, st.AllTags())

	s.logger.Debug("loaded todos", "count", len(st.Todos), "filter", st.CompletionFilter)
	return st, nil
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Engine returns the engine the store applies operations with.
func (s *Store) Engine() Engine {
	return s.engine
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.engine.now()
}

// View returns the todos currently displayed.
func (s *Store) View() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().View(s.engine.now())
}

// AllTags returns the sorted tags across every todo.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AllTags()
}

// Selected returns the selected todo in the current view.
func (s *Store) Selected() (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.engine.Selected(s.state)
	return t.clone(), ok
}

// PersistError returns the most recent storage failure, if any.
func (s *Store) PersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// Apply runs op against the current state. When op reports a change the new
// state replaces the old one and is persisted.
func (s *Store) Apply(op func(Engine, State) (State, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := op(s.engine, s.state)
	if !changed {
		return false
	}
	s.state = next
	s.persist()
	return true
}

// Add appends a todo parsed from text and returns its id.
func (s *Store) Add(text string) string {
	var id string
	s.Apply(func(e Engine, st State) (State, bool) {
		var next State
		next, id = e.Add(st, text)
		return next, true
	})
	return id
}

// SaveCurrentAndAddNew updates the todo with id and appends a blank todo
// in one step. It returns the new todo's id.
func (s *Store) SaveCurrentAndAddNew(id, text string) string {
	var newID string
	s.Apply(func(e Engine, st State) (State, bool) {
		var next State
		next, newID = e.SaveCurrentAndAddNew(st, id, text)
		return next, true
	})
	return newID
}

// ToggleCompleted flips the completion state of the todo with id.
func (s *Store) ToggleCompleted(id string) bool {
	return s.Apply(func(e Engine, st State) (State, bool) { return e.ToggleCompleted(st, id) })
}

// Delete removes the todo with id.
func (s *Store) Delete(id string) bool {
	return s.Apply(func(e Engine, st State) (State, bool) { return e.Delete(st, id) })
}

// Update replaces the text and schedule of the todo with id.
func (s *Store) Update(id, text string) bool {
	return s.Apply(func(e Engine, st State) (State, bool) { return e.Update(st, id, text) })
}

// Reorder moves the todo at canonical index from to canonical index to.
func (s *Store) Reorder(from, to int) bool {
	return s.Apply(func(e Engine, st State) (State, bool) { return e.Reorder(st, from, to) })
}

// MoveInView moves a todo between two positions of the current view.
func (s *Store) MoveInView(from, to int) bool {
	return s.Apply(func(e Engine, st State) (State, bool) { return e.MoveInView(st, from, to) })
}

// ClearAll removes every todo. Callers confirm with the user first.
func (s *Store) ClearAll() {
	s.Apply(func(e Engine, st State) (State, bool) { return e.ClearAll(st), true })
}

// SetCompletionFilter changes the completion filter.
func (s *Store) SetCompletionFilter(mode CompletionFilter) bool {
	return s.Apply(func(e Engine, st State) (State, bool) { return e.SetCompletionFilter(st, mode) })
}

// SetSelectedTag filters the view by a tag or built-in filter.
func (s *Store) SetSelectedTag(tag string) bool {
	return s.Apply(func(e Engine, st State) (State, bool) { return e.SetSelectedTag(st, tag) })
}

// persist writes the state behind. It must be called with mu held.
func (s *Store) persist() {
	todos := s.state.Todos
	if todos == nil {
		todos = []Todo{}
	}
	s.record(s.backend.Save(TodosKey, todos), TodosKey)
	s.record(s.backend.Save(CompletionFilterKey, string(s.state.CompletionFilter)), CompletionFilterKey)
	s.record(s.backend.Save(TagColorMapKey, s.state.TagColors), TagColorMapKey)
}

func (s *Store) record(err error, key string) {
	if err == nil {
		return
	}
	s.logger.Warn("persist failed", "key", key, "err", err)
	s.persistErr = fmt.Errorf("persist %s: %w", key, err)
}

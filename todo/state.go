package todo

import (
	"time"

	"github.com/amonks/toodle/internal/ids"
	"github.com/amonks/toodle/schedule"
)

// State is the full engine state: the canonical sequence plus the process
// state that drives the displayed view.
//
// SelectedIndex and EditingIndex index into the current view, not the
// canonical sequence.
type State struct {
	// Todos is the canonical sequence; Todos[i].Order == i.
	Todos            []Todo
	SelectedIndex    int
	EditingIndex     int
	CompletionFilter CompletionFilter
	// SelectedTag is a #tag, a built-in filter, or "" for none.
	SelectedTag string
	// TagColors maps each tag in use to a Palette slot.
	TagColors map[string]int
}

// NewState returns an empty state.
func NewState() State {
	return State{
		EditingIndex:     NoEditing,
		CompletionFilter: FilterAll,
		TagColors:        map[string]int{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Todos = make([]Todo, len(s.Todos))
	for i, t := range s.Todos {
		out.Todos[i] = t.clone()
	}
	out.TagColors = make(map[string]int, len(s.TagColors))
	for tag, slot := range s.TagColors {
		out.TagColors[tag] = slot
	}
	return out
}

// Editing reports whether a todo is open for editing.
func (s State) Editing() bool {
	return s.EditingIndex != NoEditing
}

// View returns the todos currently displayed.
func (s State) View(now time.Time) []Todo {
	return FilteredView(s.Todos, s.SelectedTag, s.CompletionFilter, now)
}

// AllTags returns the sorted tags across the canonical sequence.
func (s State) AllTags() []string {
	return AllTags(s.Todos)
}

// Index returns the canonical index of the todo with id, or -1.
func (s State) Index(id string) int {
	for i, t := range s.Todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Progress returns the completed and total todo counts.
func (s State) Progress() (completed, total int) {
	for _, t := range s.Todos {
		if t.Completed {
			completed++
		}
	}
	return completed, len(s.Todos)
}

// AllDone reports whether there is at least one todo and every todo is
// completed.
func (s State) AllDone() bool {
	completed, total := s.Progress()
	return total > 0 && completed == total
}

// Engine applies operations to a State. Operations never modify their input
// state; each returns the next state and whether anything changed.
type Engine struct {
	Now    func() time.Time
	NewID  func() string
	Parser schedule.Parser
}

// NewEngine returns an Engine using the wall clock, ULID ids, and the
// default schedule parser.
func NewEngine() Engine {
	return Engine{
		Now:    time.Now,
		NewID:  ids.NewGenerator(nil).New,
		Parser: schedule.NewParser(),
	}
}

func (e Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// View returns the todos s currently displays.
func (e Engine) View(s State) []Todo {
	return s.View(e.now())
}

// Selected returns the selected todo in the current view.
func (e Engine) Selected(s State) (Todo, bool) {
	view := e.View(s)
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(view) {
		return Todo{}, false
	}
	return view[s.SelectedIndex], true
}

func (e Engine) newTodo(text string, order int) Todo {
	parsed := e.Parser.Parse(text, e.now())
	return Todo{
		ID:           e.NewID(),
		Text:         parsed.CleanedText,
		Order:        order,
		ScheduledAt:  parsed.ScheduledAt,
		ScheduleText: parsed.ScheduleText,
	}
}

// Add appends a todo parsed from text. When the new todo is visible in the
// current view it becomes both selected and edited. When a filter hides it,
// editing is cleared and the selection is clamped to the view.
func (e Engine) Add(s State, text string) (State, string) {
	next := s.Clone()
	t := e.newTodo(text, len(next.Todos))
	next.Todos = append(next.Todos, t)
	next.TagColors = ReconcileTagColors(next.TagColors, next.AllTags())
	return e.focusNew(next, t.ID), t.ID
}

// SaveCurrentAndAddNew updates the todo with id from text and appends a blank
// todo, opening it for editing, as one transition. A stale id skips the
// update but still appends.
func (e Engine) SaveCurrentAndAddNew(s State, id, text string) (State, string) {
	next := s.Clone()
	if i := next.Index(id); i >= 0 {
		next.Todos[i] = e.reparse(next.Todos[i], text)
	}
	t := e.newTodo("", len(next.Todos))
	next.Todos = append(next.Todos, t)
	next.TagColors = ReconcileTagColors(next.TagColors, next.AllTags())
	return e.focusNew(next, t.ID), t.ID
}

func (e Engine) focusNew(s State, id string) State {
	view := s.View(e.now())
	for i, t := range view {
		if t.ID == id {
			s.SelectedIndex = i
			s.EditingIndex = i
			return s
		}
	}
	s.EditingIndex = NoEditing
	s.SelectedIndex = clampIndex(s.SelectedIndex, len(view))
	return s
}

func (e Engine) reparse(t Todo, text string) Todo {
	parsed := e.Parser.Parse(text, e.now())
	t.Text = parsed.CleanedText
	t.ScheduledAt = parsed.ScheduledAt
	t.ScheduleText = parsed.ScheduleText
	return t
}

// ToggleCompleted flips the completion state of the todo with id.
func (e Engine) ToggleCompleted(s State, id string) (State, bool) {
	i := s.Index(id)
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	next.Todos[i].Completed = !next.Todos[i].Completed
	return e.settleView(s, next), true
}

// Delete removes the todo with id, compacts order, clamps the selection to
// the new view, and stops editing.
func (e Engine) Delete(s State, id string) (State, bool) {
	i := s.Index(id)
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	next.Todos = append(next.Todos[:i], next.Todos[i+1:]...)
	renumber(next.Todos)
	next.TagColors = ReconcileTagColors(next.TagColors, next.AllTags())
	next.SelectedIndex = clampIndex(next.SelectedIndex, len(next.View(e.now())))
	next.EditingIndex = NoEditing
	return next, true
}

// Update replaces the text and schedule of the todo with id, parsed from
// text. Order and completion are untouched.
func (e Engine) Update(s State, id, text string) (State, bool) {
	i := s.Index(id)
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	next.Todos[i] = e.reparse(next.Todos[i], text)
	next.TagColors = ReconcileTagColors(next.TagColors, next.AllTags())
	return e.settleView(s, next), true
}

// Reorder moves the todo at canonical index from to canonical index to.
// Out-of-range indices are rejected. A selected todo that moves stays
// selected; selections displaced by the move shift by one.
func (e Engine) Reorder(s State, from, to int) (State, bool) {
	n := len(s.Todos)
	if from < 0 || from >= n || to < 0 || to >= n {
		return s, false
	}
	next := s.Clone()
	moved := next.Todos[from]
	rest := append(next.Todos[:from:from], next.Todos[from+1:]...)
	reordered := make([]Todo, 0, n)
	reordered = append(reordered, rest[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[to:]...)
	next.Todos = reordered
	renumber(next.Todos)

	sel := next.SelectedIndex
	switch {
	case sel == from:
		sel = to
	case from < sel && sel <= to:
		sel--
	case to <= sel && sel < from:
		sel++
	}
	next.SelectedIndex = clampIndex(sel, len(next.View(e.now())))
	return next, true
}

// MoveInView moves the todo at view index from to the position of the todo
// at view index to, and selects it in its new place.
func (e Engine) MoveInView(s State, from, to int) (State, bool) {
	view := s.View(e.now())
	if from < 0 || from >= len(view) || to < 0 || to >= len(view) || from == to {
		return s, false
	}
	id := view[from].ID
	next, ok := e.Reorder(s, s.Index(id), s.Index(view[to].ID))
	if !ok {
		return s, false
	}
	for i, t := range next.View(e.now()) {
		if t.ID == id {
			next.SelectedIndex = i
			break
		}
	}
	return next, true
}

// ClearAll removes every todo. Confirmation is the caller's responsibility.
func (e Engine) ClearAll(s State) State {
	next := s.Clone()
	next.Todos = nil
	next.TagColors = map[string]int{}
	next.SelectedIndex = 0
	next.EditingIndex = NoEditing
	return next
}

// SetCompletionFilter changes the completion filter. Unknown modes are
// rejected. Changing the view stops editing and clamps the selection.
func (e Engine) SetCompletionFilter(s State, mode CompletionFilter) (State, bool) {
	if !mode.IsValid() || mode == s.CompletionFilter {
		return s, false
	}
	next := s.Clone()
	next.CompletionFilter = mode
	next.EditingIndex = NoEditing
	next.SelectedIndex = clampIndex(next.SelectedIndex, len(next.View(e.now())))
	return next, true
}

// SetSelectedTag filters the view by tag, or by a built-in filter. An empty
// tag clears the filter. The selection resets to the top.
func (e Engine) SetSelectedTag(s State, tag string) (State, bool) {
	if tag == s.SelectedTag {
		return s, false
	}
	next := s.Clone()
	next.SelectedTag = tag
	next.SelectedIndex = 0
	next.EditingIndex = NoEditing
	return next, true
}

// Select moves the selection to index, clamped to the view.
func (e Engine) Select(s State, index int) (State, bool) {
	index = clampIndex(index, len(s.View(e.now())))
	if index == s.SelectedIndex {
		return s, false
	}
	next := s.Clone()
	next.SelectedIndex = index
	return next, true
}

// MoveSelection moves the selection by delta, clamped to the view.
func (e Engine) MoveSelection(s State, delta int) (State, bool) {
	return e.Select(s, s.SelectedIndex+delta)
}

// settleView fixes up the view indices of next after a change to a single
// todo that may have moved it into or out of the view. The selection is
// clamped, and an open edit follows its todo or closes when the todo is no
// longer displayed.
func (e Engine) settleView(prev, next State) State {
	now := e.now()
	view := next.View(now)
	next.SelectedIndex = clampIndex(next.SelectedIndex, len(view))
	if !prev.Editing() {
		return next
	}
	next.EditingIndex = NoEditing
	if target, ok := e.EditTarget(prev); ok {
		for i, t := range view {
			if t.ID == target.ID {
				next.EditingIndex = i
				break
			}
		}
	}
	return next
}

func renumber(todos []Todo) {
	for i := range todos {
		todos[i].Order = i
	}
}

// clampIndex clamps index into [0, max(0, n-1)].
func clampIndex(index, n int) int {
	if index > n-1 {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Package dispatch maps discrete input events onto todo store operations.
// Front ends translate their native key and mouse events into Events and
// read the resulting state back from the store.
package dispatch

import (
	"github.com/charmbracelet/log"

	"github.com/amonks/toodle/internal/logging"
	"github.com/amonks/toodle/todo"
)

// Key names an input key.
type Key string

const (
	KeyUp            Key = "up"
	KeyDown          Key = "down"
	KeyEnter         Key = "enter"
	KeyEscape        Key = "esc"
	KeySpace         Key = "space"
	KeyBackspace     Key = "backspace"
	KeyDelete        Key = "delete"
	KeyAdd           Key = "/"
	KeyHelp          Key = "?"
	KeyEdit          Key = "e"
	KeyHideCompleted Key = "f"
	KeyCompletedOnly Key = "c"
	KeyPrevTag       Key = "["
	KeyNextTag       Key = "]"
)

// Event is one key press.
type Event struct {
	Key   Key
	Shift bool

	// Text is the content of the edit field while a todo is being edited.
	Text string

	// InputCaptured reports that a text field other than the todo edit
	// field has focus. Such events are left to that field.
	InputCaptured bool
}

// Signal asks the front end to do something the store cannot.
type Signal int

const (
	SignalNone Signal = iota
	// SignalOpenHelp asks for the shortcut reference.
	SignalOpenHelp
	// SignalConfirmClear asks the user to confirm clearing every todo.
	// Call ConfirmClear once they agree.
	SignalConfirmClear
)

// Result reports how an event was handled.
type Result struct {
	// Handled is false when the event should go to the focused field.
	Handled bool
	Signal  Signal
}

var (
	ignored = Result{}
	handled = Result{Handled: true}
)

type op = func(todo.Engine, todo.State) (todo.State, bool)

// Dispatcher applies input events to a Store.
type Dispatcher struct {
	store  *todo.Store
	logger *log.Logger
}

// New returns a Dispatcher for store. A nil logger discards.
func New(store *todo.Store, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Dispatcher{store: store, logger: logger}
}

// Store returns the store events are applied to.
func (d *Dispatcher) Store() *todo.Store {
	return d.store
}

// Key handles a key press.
func (d *Dispatcher) Key(ev Event) Result {
	if d.store.State().Editing() {
		return d.editKey(ev)
	}
	if ev.InputCaptured {
		return ignored
	}
	return d.globalKey(ev)
}

func (d *Dispatcher) editKey(ev Event) Result {
	switch ev.Key {
	case KeyEnter:
		if ev.Shift {
			d.apply("save and add", func(e todo.Engine, s todo.State) (todo.State, bool) {
				next, _ := e.SaveAndAddNew(s, ev.Text)
				return next, true
			})
			return handled
		}
		d.apply("commit edit", func(e todo.Engine, s todo.State) (todo.State, bool) {
			return e.CommitEdit(s, ev.Text)
		})
		return handled
	case KeyEscape:
		d.apply("cancel edit", func(e todo.Engine, s todo.State) (todo.State, bool) {
			return e.CancelEdit(s, ev.Text)
		})
		return handled
	case KeyUp, KeyDown, KeyAdd:
		d.apply("close edit", func(e todo.Engine, s todo.State) (todo.State, bool) {
			return e.InterceptEdit(s, ev.Text)
		})
		return d.globalKey(Event{Key: ev.Key, Shift: ev.Shift})
	}
	return ignored
}

func (d *Dispatcher) globalKey(ev Event) Result {
	switch ev.Key {
	case KeyAdd:
		d.apply("add", revealAndAdd)
		return handled
	case KeyHelp:
		return Result{Handled: true, Signal: SignalOpenHelp}
	}

	st := d.store.State()
	if len(st.Todos) == 0 {
		return ignored
	}

	switch ev.Key {
	case KeyUp:
		if ev.Shift {
			d.apply("move up", moveSelected(-1))
		} else {
			d.apply("select", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.MoveSelection(s, -1) })
		}
	case KeyDown:
		if ev.Shift {
			d.apply("move down", moveSelected(1))
		} else {
			d.apply("select", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.MoveSelection(s, 1) })
		}
	case KeySpace:
		d.apply("toggle", onSelected(todo.Engine.ToggleCompleted))
	case KeyDelete, KeyBackspace:
		if ev.Key == KeyDelete && ev.Shift {
			return Result{Handled: true, Signal: SignalConfirmClear}
		}
		d.apply("delete", onSelected(todo.Engine.Delete))
	case KeyEdit:
		d.apply("edit", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.BeginEdit(s, s.SelectedIndex) })
	case KeyHideCompleted:
		d.apply("filter", toggleFilter(todo.FilterHideCompleted))
	case KeyCompletedOnly:
		d.apply("filter", toggleFilter(todo.FilterShowCompletedOnly))
	case KeyEscape:
		if st.SelectedTag == "" {
			return ignored
		}
		d.apply("clear tag", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.SetSelectedTag(s, "") })
	case KeyPrevTag:
		d.CycleTag(-1)
	case KeyNextTag:
		d.CycleTag(1)
	default:
		return ignored
	}
	return handled
}

// ConfirmClear removes every todo. Call it after the user confirms a
// SignalConfirmClear.
func (d *Dispatcher) ConfirmClear() {
	d.apply("clear", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.ClearAll(s), true })
}

// Blur handles the edit field losing focus with text in it.
func (d *Dispatcher) Blur(text string) {
	d.apply("blur", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.BlurEdit(s, text) })
}

// Close saves an open edit before the program exits. Blank text deletes the
// edited todo.
func (d *Dispatcher) Close(text string) {
	d.apply("close", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.InterceptEdit(s, text) })
}

// DragEnd moves the todo dragged from one view position to another.
func (d *Dispatcher) DragEnd(from, to int) bool {
	return d.apply("drag", func(e todo.Engine, s todo.State) (todo.State, bool) { return e.MoveInView(s, from, to) })
}

// Click selects the todo at view index. Clicks are ignored while editing.
func (d *Dispatcher) Click(index int) bool {
	return d.apply("click", func(e todo.Engine, s todo.State) (todo.State, bool) {
		if s.Editing() {
			return s, false
		}
		return e.Select(s, index)
	})
}

// ClickCheckbox toggles the todo at view index.
func (d *Dispatcher) ClickCheckbox(index int) bool {
	return d.apply("check", func(e todo.Engine, s todo.State) (todo.State, bool) {
		view := e.View(s)
		if index < 0 || index >= len(view) {
			return s, false
		}
		return e.ToggleCompleted(s, view[index].ID)
	})
}

// ClickTag selects tag as the filter, or clears it when already selected.
func (d *Dispatcher) ClickTag(tag string) bool {
	return d.apply("tag", func(e todo.Engine, s todo.State) (todo.State, bool) {
		next := tag
		if s.SelectedTag == tag {
			next = ""
		}
		return e.SetSelectedTag(s, next)
	})
}

// CycleTag moves the tag filter by delta through TagOptions, wrapping.
func (d *Dispatcher) CycleTag(delta int) bool {
	return d.apply("cycle tag", func(e todo.Engine, s todo.State) (todo.State, bool) {
		options := TagOptions(s)
		current := 0
		for i, option := range options {
			if option == s.SelectedTag {
				current = i
				break
			}
		}
		next := ((current+delta)%len(options) + len(options)) % len(options)
		return e.SetSelectedTag(s, options[next])
	})
}

// TagOptions lists the tag filters in cycling order: no filter, the user
// tags, then the built-in schedule filters.
func TagOptions(s todo.State) []string {
	options := []string{""}
	options = append(options, s.AllTags()...)
	return append(options, todo.BuiltinFilters()...)
}

func (d *Dispatcher) apply(name string, fn op) bool {
	changed := d.store.Apply(fn)
	if changed {
		d.logger.Debug("applied", "op", name)
	}
	return changed
}

// revealAndAdd clears filters that would hide a blank todo, then adds one.
func revealAndAdd(e todo.Engine, s todo.State) (todo.State, bool) {
	s, _ = e.SetSelectedTag(s, "")
	if s.CompletionFilter == todo.FilterShowCompletedOnly {
		s, _ = e.SetCompletionFilter(s, todo.FilterAll)
	}
	next, _ := e.Add(s, "")
	return next, true
}

func moveSelected(delta int) op {
	return func(e todo.Engine, s todo.State) (todo.State, bool) {
		return e.MoveInView(s, s.SelectedIndex, s.SelectedIndex+delta)
	}
}

func onSelected(fn func(todo.Engine, todo.State, string) (todo.State, bool)) op {
	return func(e todo.Engine, s todo.State) (todo.State, bool) {
		t, ok := e.Selected(s)
		if !ok {
			return s, false
		}
		return fn(e, s, t.ID)
	}
}

func toggleFilter(mode todo.CompletionFilter) op {
	return func(e todo.Engine, s todo.State) (todo.State, bool) {
		return e.SetCompletionFilter(s, s.CompletionFilter.Toggle(mode))
	}
}

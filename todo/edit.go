package todo

import "strings"

// Editing moves between two states: not editing, and editing the view entry
// at EditingIndex. Every way out of the editing state lands in not editing.

// EditTarget returns the todo being edited.
func (e Engine) EditTarget(s State) (Todo, bool) {
	if !s.Editing() {
		return Todo{}, false
	}
	view := s.View(e.now())
	if s.EditingIndex < 0 || s.EditingIndex >= len(view) {
		return Todo{}, false
	}
	return view[s.EditingIndex], true
}

// BeginEdit opens the view entry at index for editing and selects it. It is
// rejected while another edit is open or when index is outside the view.
func (e Engine) BeginEdit(s State, index int) (State, bool) {
	if s.Editing() {
		return s, false
	}
	if index < 0 || index >= len(s.View(e.now())) {
		return s, false
	}
	next := s.Clone()
	next.EditingIndex = index
	next.SelectedIndex = index
	return next, true
}

// CommitEdit saves text into the edited todo and closes the edit. Empty text
// is saved as is.
func (e Engine) CommitEdit(s State, text string) (State, bool) {
	t, ok := e.EditTarget(s)
	if !ok {
		return e.closeEdit(s)
	}
	next, _ := e.Update(s, t.ID, text)
	next.EditingIndex = NoEditing
	return next, true
}

// CancelEdit closes the edit without saving. When text is blank the edited
// todo is deleted instead.
func (e Engine) CancelEdit(s State, text string) (State, bool) {
	t, ok := e.EditTarget(s)
	if !ok {
		return e.closeEdit(s)
	}
	if strings.TrimSpace(text) == "" {
		return e.Delete(s, t.ID)
	}
	return e.closeEdit(s)
}

// BlurEdit handles the edit field losing focus. It behaves like CancelEdit.
func (e Engine) BlurEdit(s State, text string) (State, bool) {
	return e.CancelEdit(s, text)
}

// InterceptEdit closes the edit before a navigation key is handled: text is
// saved, or the todo deleted when text is blank.
func (e Engine) InterceptEdit(s State, text string) (State, bool) {
	t, ok := e.EditTarget(s)
	if !ok {
		return e.closeEdit(s)
	}
	if strings.TrimSpace(text) == "" {
		return e.Delete(s, t.ID)
	}
	next, _ := e.Update(s, t.ID, text)
	next.EditingIndex = NoEditing
	return next, true
}

// SaveAndAddNew saves text into the edited todo and opens a new blank todo.
func (e Engine) SaveAndAddNew(s State, text string) (State, string) {
	t, ok := e.EditTarget(s)
	if !ok {
		return e.Add(s, "")
	}
	return e.SaveCurrentAndAddNew(s, t.ID, text)
}

func (e Engine) closeEdit(s State) (State, bool) {
	if !s.Editing() {
		return s, false
	}
	next := s.Clone()
	next.EditingIndex = NoEditing
	return next, true
}

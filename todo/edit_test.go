package todo

import "testing"

func TestBeginAndCommitEdit(t *testing.T) {
	e := newTestEngine()
	st := seedState("a", "b")

	st, ok := e.BeginEdit(st, 1)
	if !ok || st.EditingIndex != 1 || st.SelectedIndex != 1 {
		t.Fatalf("expected editing and selecting 1, got editing=%d selected=%d", st.EditingIndex, st.SelectedIndex)
	}
	if _, ok := e.BeginEdit(st, 0); ok {
		t.Fatalf("expected a second edit to be rejected")
	}

	st, ok = e.CommitEdit(st, "b revised tomorrow")
	if !ok {
		t.Fatalf("expected commit to succeed")
	}
	if st.Editing() {
		t.Fatalf("expected edit closed")
	}
	todo := st.Todos[1]
	if todo.Text != "b revised" || !todo.Scheduled() {
		t.Fatalf("expected reparsed todo, got %+v", todo)
	}
}

func TestBeginEditOutsideView(t *testing.T) {
	e := newTestEngine()
	st := seedState("a")

	if _, ok := e.BeginEdit(st, 3); ok {
		t.Fatalf("expected edit outside view to be rejected")
	}
}

func TestCommitEditKeepsEmptyText(t *testing.T) {
	e := newTestEngine()
	st, _ := e.BeginEdit(seedState("a"), 0)

	st, _ = e.CommitEdit(st, "")

	if len(st.Todos) != 1 || st.Todos[0].Text != "" {
		t.Fatalf("expected empty todo kept, got %+v", st.Todos)
	}
}

func TestCancelEdit(t *testing.T) {
	e := newTestEngine()

	t.Run("keeps todo with text", func(t *testing.T) {
		st, _ := e.BeginEdit(seedState("a"), 0)
		st, _ = e.CancelEdit(st, "changed")
		if st.Editing() || st.Todos[0].Text != "a" {
			t.Fatalf("expected edit closed without saving, got %+v", st)
		}
	})

	t.Run("deletes blank todo", func(t *testing.T) {
		st, _ := e.BeginEdit(seedState("a", "b"), 1)
		st, _ = e.BlurEdit(st, "   ")
		if len(st.Todos) != 1 || st.Editing() {
			t.Fatalf("expected blank todo deleted, got %+v", st)
		}
	})
}

func TestInterceptEdit(t *testing.T) {
	e := newTestEngine()

	st, _ := e.BeginEdit(seedState("a", "b"), 0)
	st, _ = e.InterceptEdit(st, "saved")
	if st.Editing() || st.Todos[0].Text != "saved" {
		t.Fatalf("expected text saved and edit closed, got %+v", st)
	}

	st, _ = e.BeginEdit(st, 1)
	st, _ = e.InterceptEdit(st, "")
	if len(st.Todos) != 1 {
		t.Fatalf("expected blank todo deleted, got %d todos", len(st.Todos))
	}

	if _, ok := e.InterceptEdit(st, "x"); ok {
		t.Fatalf("expected no change when not editing")
	}
}

func TestSaveAndAddNew(t *testing.T) {
	e := newTestEngine()
	st, _ := e.Add(NewState(), "")

	st, id := e.SaveAndAddNew(st, "first #a")

	if len(st.Todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(st.Todos))
	}
	if st.Todos[0].Text != "first #a" {
		t.Fatalf("expected first todo saved, got %q", st.Todos[0].Text)
	}
	if st.Todos[1].ID != id || st.EditingIndex != 1 || st.SelectedIndex != 1 {
		t.Fatalf("expected new todo edited, got editing=%d selected=%d", st.EditingIndex, st.SelectedIndex)
	}
}

func TestSaveCurrentAndAddNewWithStaleID(t *testing.T) {
	e := newTestEngine()
	st := seedState("a")

	st, _ = e.SaveCurrentAndAddNew(st, "missing", "ignored")

	if len(st.Todos) != 2 || st.Todos[0].Text != "a" {
		t.Fatalf("expected blank todo appended without update, got %+v", st.Todos)
	}
}

func TestEditableText(t *testing.T) {
	e := newTestEngine()
	st, _ := e.Add(NewState(), "Buy milk tomorrow 9am")

	if got := st.Todos[0].EditableText(); got != "Buy milk tomorrow 9am" {
		t.Fatalf("expected %q, got %q", "Buy milk tomorrow 9am", got)
	}
	if got := (Todo{Text: "plain"}).EditableText(); got != "plain" {
		t.Fatalf("expected %q, got %q", "plain", got)
	}
}

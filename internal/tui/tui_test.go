package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/amonks/toodle/dispatch"
	"github.com/amonks/toodle/internal/state"
	"github.com/amonks/toodle/todo"
)

var testNow = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*60*60))

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func newTestModel(t *testing.T, texts ...string) model {
	t.Helper()
	useASCIIRenderer(t)

	next := 0
	store, err := todo.Open(todo.OpenOptions{
		Backend: state.NewStore(t.TempDir()),
		Now:     func() time.Time { return testNow },
		NewID: func() string {
			id := fmt.Sprintf("id%d", next)
			next++
			return id
		},
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	for _, text := range texts {
		store.Add(text)
	}
	store.Apply(func(e todo.Engine, s todo.State) (todo.State, bool) {
		s.EditingIndex = todo.NoEditing
		s.SelectedIndex = 0
		return s, true
	})

	m := newModel(context.Background(), dispatch.New(store, nil), nil)
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 20})
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
}

func todoTexts(m model) []string {
	var out []string
	for _, t := range m.store.State().Todos {
		out = append(out, t.Text)
	}
	return out
}

func TestViewListsTodos(t *testing.T) {
	m := newTestModel(t, "Buy milk tomorrow 9am #errand", "Call mom")

	view := m.View()

	for _, want := range []string{"toodle", "0/2 done", "All", "#errand", "Past due", "Tomorrow", "[ ] Buy milk", "Call mom", "Jan 2, 2024, 9:00 AM (in 23h)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "9am") {
		t.Fatalf("expected schedule phrase stripped from text, got:\n%s", view)
	}
}

func TestViewBeforeResize(t *testing.T) {
	useASCIIRenderer(t)
	m := newTestModel(t)
	m.width, m.height = 0, 0

	if got := m.View(); got != "Loading toodle..." {
		t.Fatalf("unexpected view %q", got)
	}
}

func TestViewEmptyStates(t *testing.T) {
	m := newTestModel(t)
	if view := m.View(); !strings.Contains(view, "No todos yet") {
		t.Fatalf("expected empty list hint, got:\n%s", view)
	}

	m = newTestModel(t, "open")
	m = send(m, runes("c"))
	if view := m.View(); !strings.Contains(view, "Nothing matches this filter") {
		t.Fatalf("expected empty filter hint, got:\n%s", view)
	}
}

func TestAddAndTypeTodo(t *testing.T) {
	m := newTestModel(t, "first")

	m = send(m, runes("/"))
	if m.editingID == "" {
		t.Fatalf("expected edit field open after /")
	}
	m = send(m, runes("Water plants"), keyOf(tea.KeyEnter))

	if m.editingID != "" {
		t.Fatalf("expected edit closed after enter")
	}
	texts := todoTexts(m)
	if len(texts) != 2 || texts[1] != "Water plants" {
		t.Fatalf("expected typed todo saved, got %v", texts)
	}
}

func TestLettersAreTypedWhileEditing(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m = send(m, runes("/"), runes("j"), runes("k"), runes("x"), runes("q"))

	if m.editingID == "" {
		t.Fatalf("expected to still be editing")
	}
	if got := m.input.Value(); got != "jkxq" {
		t.Fatalf("expected typed text %q, got %q", "jkxq", got)
	}
	if got := m.store.State().SelectedIndex; got != 2 {
		t.Fatalf("expected selection on the new todo, got %d", got)
	}
}

func TestEditPrefillsScheduleText(t *testing.T) {
	m := newTestModel(t, "Buy milk tomorrow 9am")

	m = send(m, runes("e"))

	if got := m.input.Value(); got != "Buy milk tomorrow 9am" {
		t.Fatalf("expected edit field to hold the original phrase, got %q", got)
	}
}

func TestToggleAndNavigate(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m = send(m, runes("j"), space())

	st := m.store.State()
	if st.SelectedIndex != 1 || !st.Todos[1].Completed {
		t.Fatalf("expected second todo selected and completed, got %+v", st)
	}
	if view := m.View(); !strings.Contains(view, "[x] b") || !strings.Contains(view, "1/2 done") {
		t.Fatalf("expected completed row and progress, got:\n%s", view)
	}
}

func TestAllDoneBanner(t *testing.T) {
	m := newTestModel(t, "only")

	m = send(m, space())

	if view := m.View(); !strings.Contains(view, "All done!") {
		t.Fatalf("expected all done banner, got:\n%s", view)
	}
}

func TestHelpModal(t *testing.T) {
	m := newTestModel(t, "a")

	m = send(m, runes("?"))
	if m.modal != modalHelp {
		t.Fatalf("expected help modal")
	}
	if view := m.View(); !strings.Contains(view, "Keyboard shortcuts") {
		t.Fatalf("expected shortcut reference, got:\n%s", view)
	}

	m = send(m, keyOf(tea.KeyEsc))
	if m.modal != modalNone {
		t.Fatalf("expected help closed")
	}
}

func TestClearAllNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m = send(m, runes("D"))
	if m.modal != modalConfirmClear {
		t.Fatalf("expected confirm modal")
	}
	if view := m.View(); !strings.Contains(view, "Are you sure you want to clear all todos?") {
		t.Fatalf("expected confirmation prompt, got:\n%s", view)
	}
	m = send(m, keyOf(tea.KeyEnter))
	if len(todoTexts(m)) != 2 {
		t.Fatalf("expected default choice to cancel")
	}

	m = send(m, runes("D"), keyOf(tea.KeyLeft), keyOf(tea.KeyEnter))
	if len(todoTexts(m)) != 0 {
		t.Fatalf("expected todos cleared")
	}
	if !strings.Contains(m.View(), "Cleared all todos") {
		t.Fatalf("expected status message")
	}
}

func TestQuitDropsBlankEdit(t *testing.T) {
	m := newTestModel(t, "a")
	m = send(m, runes("/"))

	updated, cmd := m.Update(keyOf(tea.KeyCtrlC))
	m = updated.(model)

	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if got := todoTexts(m); len(got) != 1 {
		t.Fatalf("expected blank todo dropped, got %v", got)
	}
}

func TestQuitSavesEdit(t *testing.T) {
	m := newTestModel(t, "a")
	m = send(m, runes("e"), runes(" and b"))

	updated, cmd := m.Update(keyOf(tea.KeyCtrlC))
	m = updated.(model)

	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	st := m.store.State()
	if st.Editing() || st.Todos[0].Text != "a and b" {
		t.Fatalf("expected typed text saved on quit, got %+v", st)
	}
}

func TestMouseSelectToggleAndDrag(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")

	m = send(m, click(10, listTop+1), release(10, listTop+1))
	if got := m.store.State().SelectedIndex; got != 1 {
		t.Fatalf("expected click to select row 1, got %d", got)
	}

	m = send(m, click(checkboxStart, listTop+2))
	if !m.store.State().Todos[2].Completed {
		t.Fatalf("expected checkbox click to toggle row 2")
	}

	m = send(m, click(10, listTop), release(10, listTop+2))
	if got := todoTexts(m); strings.Join(got, "") != "bca" {
		t.Fatalf("expected drag to move a to the end, got %v", got)
	}
}

func TestTagBarClick(t *testing.T) {
	m := newTestModel(t, "a #x", "b")

	var target chip
	for _, c := range tagBarLayout(m.store.State()) {
		if c.tag == "#x" {
			target = c
		}
	}
	m = send(m, click(target.start, 1))

	if got := m.store.State().SelectedTag; got != "#x" {
		t.Fatalf("expected #x selected, got %q", got)
	}
	if view := m.View(); strings.Contains(view, "[ ] b") {
		t.Fatalf("expected untagged todo hidden, got:\n%s", view)
	}
}

func TestScrollKeepsSelectionVisible(t *testing.T) {
	var texts []string
	for i := 0; i < 30; i++ {
		texts = append(texts, fmt.Sprintf("todo %02d", i))
	}
	m := newTestModel(t, texts...)

	for i := 0; i < 29; i++ {
		m = send(m, keyOf(tea.KeyDown))
	}

	if view := m.View(); !strings.Contains(view, "todo 29") || strings.Contains(view, "todo 00") {
		t.Fatalf("expected the list scrolled to the end, got:\n%s", view)
	}
}

func TestEventFor(t *testing.T) {
	cases := []struct {
		msg     tea.KeyMsg
		editing bool
		want    dispatch.Event
		ok      bool
	}{
		{msg: keyOf(tea.KeyShiftUp), want: dispatch.Event{Key: dispatch.KeyUp, Shift: true}, ok: true},
		{msg: runes("J"), want: dispatch.Event{Key: dispatch.KeyDown, Shift: true}, ok: true},
		{msg: runes("J"), editing: true, ok: false},
		{msg: runes("/"), editing: true, want: dispatch.Event{Key: dispatch.KeyAdd}, ok: true},
		{msg: tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, want: dispatch.Event{Key: dispatch.KeyEnter, Shift: true}, ok: true},
		{msg: runes("z"), ok: false},
	}

	for _, c := range cases {
		got, ok := eventFor(c.msg, c.editing)
		if ok != c.ok || got != c.want {
			t.Fatalf("eventFor(%q, %v): expected %+v %v, got %+v %v", c.msg.String(), c.editing, c.want, c.ok, got, ok)
		}
	}
}

// Package tui is the interactive terminal front end for toodle.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/amonks/toodle/dispatch"
	"github.com/amonks/toodle/internal/logging"
	"github.com/amonks/toodle/todo"
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalConfirmClear
)

// Rows above the list: title, tag bar, blank line.
const listTop = 3

type model struct {
	ctx        context.Context
	dispatcher *dispatch.Dispatcher
	store      *todo.Store
	logger     *log.Logger

	width  int
	height int
	offset int

	input     textinput.Model
	editingID string

	modal       modalKind
	modalChoice int

	dragFrom int

	status      string
	statusLevel statusLevel
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, d *dispatch.Dispatcher, logger *log.Logger) error {
	if d == nil {
		return fmt.Errorf("dispatcher is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, d, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, d *dispatch.Dispatcher, logger *log.Logger) model {
	if logger == nil {
		logger = logging.Discard()
	}
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "What needs doing?"

	m := model{
		ctx:        ctx,
		dispatcher: d,
		store:      d.Store(),
		logger:     logger,
		input:      input,
		dragFrom:   -1,
	}
	m.syncEdit()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.updateModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.width-12)
		m.ensureVisible()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.editingID != "" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := m.editingID != ""
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "q":
		if !editing {
			return m.quit()
		}
	}

	ev, ok := eventFor(msg, editing)
	if !ok {
		return m.forwardToInput(msg)
	}
	if editing {
		ev.Text = m.input.Value()
	}

	res := m.dispatcher.Key(ev)
	if !res.Handled {
		return m.forwardToInput(msg)
	}
	switch res.Signal {
	case dispatch.SignalOpenHelp:
		m.modal = modalHelp
	case dispatch.SignalConfirmClear:
		m.modal = modalConfirmClear
		m.modalChoice = 1
	}
	cmd := m.afterChange()
	return m, cmd
}

func (m model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editingID == "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) quit() (tea.Model, tea.Cmd) {
	if m.editingID != "" {
		m.dispatcher.Close(m.input.Value())
	}
	return m, tea.Quit
}

// eventFor translates a key press. Letter aliases apply only outside the
// edit field, where they cannot be typed text.
func eventFor(msg tea.KeyMsg, editing bool) (dispatch.Event, bool) {
	key := msg.String()
	switch key {
	case "up":
		return dispatch.Event{Key: dispatch.KeyUp}, true
	case "down":
		return dispatch.Event{Key: dispatch.KeyDown}, true
	case "shift+up":
		return dispatch.Event{Key: dispatch.KeyUp, Shift: true}, true
	case "shift+down":
		return dispatch.Event{Key: dispatch.KeyDown, Shift: true}, true
	case "enter":
		return dispatch.Event{Key: dispatch.KeyEnter}, true
	case "alt+enter", "ctrl+j", "shift+enter":
		return dispatch.Event{Key: dispatch.KeyEnter, Shift: true}, true
	case "esc":
		return dispatch.Event{Key: dispatch.KeyEscape}, true
	case " ", "space":
		return dispatch.Event{Key: dispatch.KeySpace}, true
	case "backspace":
		return dispatch.Event{Key: dispatch.KeyBackspace}, true
	case "delete":
		return dispatch.Event{Key: dispatch.KeyDelete}, true
	case "shift+delete":
		return dispatch.Event{Key: dispatch.KeyDelete, Shift: true}, true
	case "/", "?", "e", "f", "c", "[", "]":
		return dispatch.Event{Key: dispatch.Key(key)}, true
	}
	if editing {
		return dispatch.Event{}, false
	}
	switch key {
	case "k":
		return dispatch.Event{Key: dispatch.KeyUp}, true
	case "j":
		return dispatch.Event{Key: dispatch.KeyDown}, true
	case "K":
		return dispatch.Event{Key: dispatch.KeyUp, Shift: true}, true
	case "J":
		return dispatch.Event{Key: dispatch.KeyDown, Shift: true}, true
	case "x":
		return dispatch.Event{Key: dispatch.KeyDelete}, true
	case "D":
		return dispatch.Event{Key: dispatch.KeyDelete, Shift: true}, true
	}
	return dispatch.Event{}, false
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.editingID != "" {
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.dispatcher.Key(dispatch.Event{Key: dispatch.KeyUp})
		case tea.MouseButtonWheelDown:
			m.dispatcher.Key(dispatch.Event{Key: dispatch.KeyDown})
		}
		cmd := m.afterChange()
		return m, cmd
	}

	if msg.Y == 1 && msg.Action == tea.MouseActionPress {
		for _, chip := range tagBarLayout(m.store.State()) {
			if msg.X >= chip.start && msg.X < chip.end {
				m.dispatcher.ClickTag(chip.tag)
				break
			}
		}
		cmd := m.afterChange()
		return m, cmd
	}

	index, ok := m.rowAt(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		m.dragFrom = -1
		if !ok {
			return m, nil
		}
		if msg.X >= checkboxStart && msg.X < checkboxEnd {
			m.dispatcher.ClickCheckbox(index)
			cmd := m.afterChange()
			return m, cmd
		}
		m.dragFrom = index
		m.dispatcher.Click(index)
	case tea.MouseActionRelease:
		if ok && m.dragFrom >= 0 && m.dragFrom != index {
			m.dispatcher.DragEnd(m.dragFrom, index)
		}
		m.dragFrom = -1
	}
	cmd := m.afterChange()
	return m, cmd
}

// rowAt maps a screen line to a view index.
func (m model) rowAt(y int) (int, bool) {
	if y < listTop {
		return 0, false
	}
	index := y - listTop + m.offset
	if index >= len(m.store.View()) {
		return 0, false
	}
	return index, true
}

// afterChange brings the edit field and scroll position in line with the
// store, and reports storage failures.
func (m *model) afterChange() tea.Cmd {
	cmd := m.syncEdit()
	m.ensureVisible()
	if err := m.store.PersistError(); err != nil {
		m.setStatus("Could not save: "+err.Error(), statusError)
	}
	return cmd
}

func (m *model) syncEdit() tea.Cmd {
	target, ok := m.store.Engine().EditTarget(m.store.State())
	if !ok {
		if m.editingID != "" {
			m.editingID = ""
			m.input.Blur()
			m.input.SetValue("")
		}
		return nil
	}
	if target.ID == m.editingID {
		return nil
	}
	m.editingID = target.ID
	m.input.SetValue(target.EditableText())
	m.input.CursorEnd()
	m.logger.Debug("editing", "id", target.ID)
	return m.input.Focus()
}

func (m *model) ensureVisible() {
	rows := m.listHeight()
	if rows <= 0 {
		m.offset = 0
		return
	}
	selected := m.store.State().SelectedIndex
	if selected < m.offset {
		m.offset = selected
	}
	if selected >= m.offset+rows {
		m.offset = selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the number of todo rows that fit below the header and above
// the footer.
func (m model) listHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(1, m.height-listTop-2)
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
		}
		return m, nil
	}
	if m.modal == modalHelp {
		switch key.String() {
		case "?", "esc", "enter":
			m.modal = modalNone
		case "ctrl+c", "q":
			return m.quit()
		}
		return m, nil
	}
	switch key.String() {
	case "left", "right", "tab", "shift+tab":
		m.modalChoice = 1 - m.modalChoice
		return m, nil
	case "enter":
		return m.resolveModal(m.modalChoice == 0)
	case "y":
		return m.resolveModal(true)
	case "esc", "n":
		return m.resolveModal(false)
	case "ctrl+c":
		return m.quit()
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	kind := m.modal
	m.modal = modalNone
	if kind == modalConfirmClear && confirm {
		m.dispatcher.ConfirmClear()
		m.setStatus("Cleared all todos", statusInfo)
	}
	cmd := m.afterChange()
	return m, cmd
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/amonks/toodle/dispatch"
	"github.com/amonks/toodle/internal/markdown"
	"github.com/amonks/toodle/internal/ui"
	"github.com/amonks/toodle/schedule"
	"github.com/amonks/toodle/todo"
)

// Columns of the "[ ]" checkbox within a row, after the two-column cursor.
const (
	checkboxStart = 2
	checkboxEnd   = 5
)

const progressWidth = 20

const terminalAliases = "Terminal aliases: `j`/`k` move, `J`/`K` reorder, `x` delete, " +
	"`D` clear all, `Alt+Enter` save and add, `q` quit."

type chip struct {
	tag   string
	label string
	start int
	end   int
}

// tagBarLayout places one chip per tag filter option on the tag bar line.
func tagBarLayout(st todo.State) []chip {
	options := dispatch.TagOptions(st)
	chips := make([]chip, 0, len(options))
	x := 0
	for _, tag := range options {
		label := todo.FilterLabel(tag)
		if tag == "" {
			label = "All"
		}
		width := lipgloss.Width(label) + 2
		chips = append(chips, chip{tag: tag, label: label, start: x, end: x + width})
		x += width + 1
	}
	return chips
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading toodle..."
	}
	st := m.store.State()
	now := m.store.Now()

	lines := []string{
		m.renderHeader(st),
		m.renderTagBar(st),
		"",
	}
	lines = append(lines, m.renderList(st, now)...)
	lines = append(lines, "", m.renderFooter())
	view := strings.Join(lines, "\n")

	if m.modal != modalNone {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}
	return view
}

func (m model) renderHeader(st todo.State) string {
	completed, total := st.Progress()
	parts := []string{titleStyle.Render("toodle")}
	if total > 0 {
		filled := completed * progressWidth / total
		bar := progressFullStyle.Render(strings.Repeat("█", filled)) +
			progressEmptyStyle.Render(strings.Repeat("░", progressWidth-filled))
		parts = append(parts, bar, fmt.Sprintf("%d/%d done", completed, total))
	}
	if st.AllDone() {
		parts = append(parts, statusSuccessStyle.Render("All done!"))
	}
	if st.CompletionFilter != todo.FilterAll {
		parts = append(parts, valueMuted.Render("filter: "+string(st.CompletionFilter)))
	}
	return m.fit(strings.Join(parts, "  "))
}

func (m model) renderTagBar(st todo.State) string {
	chips := tagBarLayout(st)
	rendered := make([]string, 0, len(chips))
	for _, c := range chips {
		label := " " + c.label + " "
		switch {
		case c.tag == st.SelectedTag:
			rendered = append(rendered, tabActiveStyle.Render(label))
		case todo.IsBuiltinFilter(c.tag) || c.tag == "":
			rendered = append(rendered, tabInactiveStyle.Render(label))
		default:
			colors := todo.ColorsForTag(c.tag, st.TagColors)
			rendered = append(rendered, chipStyle(colors.Background, colors.Foreground).Render(label))
		}
	}
	return m.fit(strings.Join(rendered, " "))
}

func (m model) renderList(st todo.State, now time.Time) []string {
	view := st.View(now)
	rows := m.listHeight()
	if len(view) == 0 {
		if len(st.Todos) == 0 {
			return []string{valueMuted.Render("  No todos yet. Press / to add one.")}
		}
		return []string{valueMuted.Render("  Nothing matches this filter.")}
	}

	end := min(len(view), m.offset+rows)
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(st, view[i], i, now))
	}
	return lines
}

func (m model) renderRow(st todo.State, t todo.Todo, index int, now time.Time) string {
	cursor := "  "
	if index == st.SelectedIndex {
		cursor = cursorStyle.Render("› ")
	}
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	if st.EditingIndex == index && m.editingID == t.ID {
		return m.fit(cursor + box + " " + m.input.View())
	}

	line := cursor + box + " " + renderText(t, st.TagColors)
	if t.Scheduled() {
		line += "  " + dueStyle(t.ScheduledAt, now).Render(ui.FormatDue(t.ScheduledAt, now))
	}
	if index == st.SelectedIndex {
		line = lipgloss.NewStyle().Bold(true).Render(line)
	}
	return m.fit(line)
}

// renderText colors tags with their chip colors and dims completed todos.
func renderText(t todo.Todo, colors map[string]int) string {
	if strings.TrimSpace(t.Text) == "" {
		return valueMuted.Render("(empty)")
	}
	plain := rowStyle
	if t.Completed {
		plain = doneStyle
	}
	var b strings.Builder
	last := 0
	for _, span := range todo.TagSpans(t.Text) {
		b.WriteString(plain.Render(t.Text[last:span[0]]))
		tag := t.Text[span[0]:span[1]]
		c := todo.ColorsForTag(tag, colors)
		b.WriteString(chipStyle(c.Background, c.Foreground).Render(tag))
		last = span[1]
	}
	b.WriteString(plain.Render(t.Text[last:]))
	return b.String()
}

func dueStyle(at *time.Time, now time.Time) lipgloss.Style {
	switch schedule.Classify(at, now) {
	case schedule.ClassPastDue:
		return pastDueStyle
	case schedule.ClassToday:
		return todayStyle
	case schedule.ClassTomorrow:
		return tomorrowStyle
	default:
		return laterStyle
	}
}

func (m model) renderFooter() string {
	if strings.TrimSpace(m.status) != "" {
		style := valueMuted
		switch m.statusLevel {
		case statusError:
			style = statusErrorStyle
		case statusInfo:
			style = statusSuccessStyle
		}
		return m.fit(style.Render(m.status))
	}
	return m.fit(helpBarStyle.Render(m.helpSummary()))
}

func (m model) helpSummary() string {
	if m.editingID != "" {
		return "enter save  alt+enter save & add  esc done  ↑/↓ save & move"
	}
	return "/ add  e edit  space toggle  ⇧↑/⇧↓ move  [ ] tags  f/c filters  ? help  q quit"
}

func (m model) modalView() string {
	if m.modal == modalHelp {
		width := min(80, max(20, m.width-8))
		help := markdown.SafeRender(width, 0, []byte(dispatch.ShortcutsMarkdown()+"\n"+terminalAliases+"\n"))
		return modalStyle.Render(string(help))
	}

	options := []string{"Clear all", "Cancel"}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := valueMuted
		if i == m.modalChoice {
			style = selectedButton
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{
		"Are you sure you want to clear all todos?",
		"",
		strings.Join(buttons, " "),
	}, "\n")
	return modalStyle.Render(content)
}

// fit truncates a rendered line to the window width.
func (m model) fit(line string) string {
	if m.width <= 0 {
		return line
	}
	return truncate.StringWithTail(line, uint(m.width), "…")
}

package dispatch

import (
	"fmt"
	"strings"
)

// Binding describes one shortcut in the reference.
type Binding struct {
	Keys   string
	Action string
}

// Bindings returns the shortcuts available while no todo is being edited.
func Bindings() []Binding {
	return []Binding{
		{Keys: "/", Action: "Add a todo"},
		{Keys: "?", Action: "Show keyboard shortcuts"},
		{Keys: "↑ / ↓", Action: "Move the selection"},
		{Keys: "Shift+↑ / Shift+↓", Action: "Move the selected todo"},
		{Keys: "Space", Action: "Toggle the selected todo"},
		{Keys: "Backspace / Delete", Action: "Delete the selected todo"},
		{Keys: "Shift+Delete", Action: "Clear all todos"},
		{Keys: "e", Action: "Edit the selected todo"},
		{Keys: "f", Action: "Hide completed todos"},
		{Keys: "c", Action: "Show only completed todos"},
		{Keys: "[ / ]", Action: "Previous / next tag filter"},
		{Keys: "Esc", Action: "Clear the tag filter"},
	}
}

// EditBindings returns the shortcuts available while editing a todo.
func EditBindings() []Binding {
	return []Binding{
		{Keys: "Enter", Action: "Save"},
		{Keys: "Shift+Enter", Action: "Save and add another todo"},
		{Keys: "Esc", Action: "Stop editing (deletes an empty todo)"},
		{Keys: "↑ / ↓ / /", Action: "Save, then move or add"},
	}
}

// ShortcutsMarkdown renders the shortcut reference as markdown.
func ShortcutsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n\n")
	writeBindings(&b, Bindings())
	b.WriteString("\n## While editing\n\n")
	writeBindings(&b, EditBindings())
	b.WriteString("\n## Scheduling\n\n")
	b.WriteString("Write a date into a todo to schedule it: `Call mom tomorrow 5pm`, `Pay rent on feb 1`, ")
	b.WriteString("`Dentist next tuesday at 9am`, `Water plants in 3 days`.\n")
	return b.String()
}

func writeBindings(b *strings.Builder, bindings []Binding) {
	b.WriteString("| Key | Action |\n|-----|--------|\n")
	for _, binding := range bindings {
		fmt.Fprintf(b, "| `%s` | %s |\n", binding.Keys, binding.Action)
	}
}

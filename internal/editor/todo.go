package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/toodle/internal/strings"
	"github.com/amonks/toodle/internal/ui"
	"github.com/amonks/toodle/todo"
)

// TodoData represents the data used to render the TOML template.
type TodoData struct {
	// ID is the todo ID.
	ID string
	// Text is the todo's editable text, schedule phrase included.
	Text string
	// Completed is the todo's completion state.
	Completed bool
	// Due describes the current due date, if any.
	Due string
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t todo.Todo, now time.Time) TodoData {
	return TodoData{
		ID:        t.ID,
		Text:      t.EditableText(),
		Completed: t.Completed,
		Due:       ui.FormatDue(t.ScheduledAt, now),
	}
}

var todoTemplate = template.Must(template.New("todo").Parse(`# Editing todo {{ .ID }}
{{- if .Due }}
# Currently due {{ .Due }}.
{{- end }}
# A date phrase in the text, like "tomorrow 5pm" or "next friday", sets the due date.
text = {{ printf "%q" .Text }}
completed = {{ .Completed }}
`))

// RenderTodoTOML renders the todo data as a TOML string for editing.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo represents the parsed result from the TOML editor output.
type ParsedTodo struct {
	Text      string `toml:"text"`
	Completed bool   `toml:"completed"`
}

// ParseTodoTOML parses the TOML content from the editor.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	var parsed ParsedTodo
	meta, err := toml.Decode(content, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("unknown field %s", strings.Join(keys, ", "))
	}
	if !meta.IsDefined("text") {
		return nil, todo.ErrEmptyText
	}

	parsed.Text = internalstrings.NormalizeWhitespace(parsed.Text)
	if err := todo.ValidateText(parsed.Text); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func createTodoTempFile() (*os.File, error) {
	return os.CreateTemp("", "toodle-todo-*.toml")
}

// EditTodo opens the editor for a todo and returns the parsed result.
func EditTodo(existing todo.Todo, now time.Time) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(DataFromTodo(existing, now))
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTodoTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited))
}

package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/amonks/toodle/schedule"
)

// Storage keys. Each holds one JSON value.
const (
	TodosKey            = "todos"
	CompletionFilterKey = "completionFilter"
	TagColorMapKey      = "tagColorMap"
	// LegacyHideCompletedKey held a boolean before completion filters had
	// three modes. It is migrated once and then deleted.
	LegacyHideCompletedKey = "hideCompleted"
)

const todoSchemaURL = "toodle://schema/todo.json"

const todoSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "text"],
  "properties": {
    "id": {"type": ["string", "integer"]},
    "text": {"type": "string"},
    "completed": {"type": "boolean"},
    "order": {"type": "integer", "minimum": 0},
    "scheduledAt": {"type": ["string", "null"]},
    "scheduleText": {"type": ["string", "null"]}
  }
}`

var compiledTodoSchema = jsonschema.MustCompileString(todoSchemaURL, todoSchema)

// record is the persisted shape of a Todo.
type record struct {
	ID           json.RawMessage `json:"id"`
	Text         string          `json:"text"`
	Completed    bool            `json:"completed"`
	Order        *int            `json:"order,omitempty"`
	ScheduledAt  *string         `json:"scheduledAt"`
	ScheduleText *string         `json:"scheduleText"`
}

type outRecord struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	Completed    bool    `json:"completed"`
	Order        int     `json:"order"`
	ScheduledAt  *string `json:"scheduledAt"`
	ScheduleText *string `json:"scheduleText"`
}

// MarshalJSON writes the persisted record shape. Timestamps are UTC ISO-8601.
func (t Todo) MarshalJSON() ([]byte, error) {
	out := outRecord{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Order:     t.Order,
	}
	if t.ScheduledAt != nil && t.ScheduleText != nil {
		at := schedule.FormatISO(*t.ScheduledAt)
		text := *t.ScheduleText
		out.ScheduledAt = &at
		out.ScheduleText = &text
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a persisted record. Numeric ids are converted to
// strings. An unparseable timestamp, or a timestamp without its phrase,
// clears both schedule fields.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	id, err := decodeID(rec.ID)
	if err != nil {
		return err
	}

	*t = Todo{ID: id, Text: rec.Text, Completed: rec.Completed, Order: -1}
	if rec.Order != nil {
		t.Order = *rec.Order
	}
	if rec.ScheduledAt == nil || rec.ScheduleText == nil {
		return nil
	}
	at, ok := schedule.ParseISO(*rec.ScheduledAt)
	if !ok {
		return nil
	}
	text := *rec.ScheduleText
	t.ScheduledAt = &at
	t.ScheduleText = &text
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("todo id is missing")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("todo id is empty")
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("todo id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return "", fmt.Errorf("todo id %s is not an integer", n)
	}
	return n.String(), nil
}

// DecodeTodos parses a persisted todos value. Records that fail validation
// are skipped and reported in problems. Duplicate ids keep their first
// record. The result is sorted by stored order and renumbered densely.
func DecodeTodos(data []byte) (todos []Todo, problems []string, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode todos: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		var doc any
		if err := json.Unmarshal(item, &doc); err != nil {
			problems = append(problems, fmt.Sprintf("todos[%d]: %v", i, err))
			continue
		}
		if err := compiledTodoSchema.Validate(doc); err != nil {
			problems = append(problems, fmt.Sprintf("todos[%d]: %s", i, describeSchemaError(err)))
			continue
		}
		var t Todo
		if err := json.Unmarshal(item, &t); err != nil {
			problems = append(problems, fmt.Sprintf("todos[%d]: %v", i, err))
			continue
		}
		if seen[t.ID] {
			problems = append(problems, fmt.Sprintf("todos[%d]: duplicate id %s", i, t.ID))
			continue
		}
		seen[t.ID] = true
		if t.Order < 0 {
			t.Order = i
		}
		todos = append(todos, t)
	}

	sortByOrder(todos)
	renumber(todos)
	return todos, problems, nil
}

func describeSchemaError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var messages []string
	collectSchemaMessages(ve, &messages)
	return strings.Join(messages, "; ")
}

func collectSchemaMessages(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, location+": "+err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaMessages(cause, messages)
	}
}

func sortByOrder(todos []Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].Order < todos[j].Order
	})
}

// migrateCompletionFilter picks the initial completion filter from the
// stored value, falling back to the legacy boolean: true means
// hideCompleted and anything else means all.
func migrateCompletionFilter(stored, legacy []byte) CompletionFilter {
	if stored != nil {
		var mode string
		if err := json.Unmarshal(stored, &mode); err == nil && CompletionFilter(mode).IsValid() {
			return CompletionFilter(mode)
		}
	}
	if legacy != nil {
		var hide bool
		if err := json.Unmarshal(legacy, &hide); err == nil && hide {
			return FilterHideCompleted
		}
	}
	return FilterAll
}

func decodeColorMap(data []byte, colors *map[string]int) error {
	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode tag colors: %w", err)
	}
	if decoded == nil {
		decoded = map[string]int{}
	}
	*colors = decoded
	return nil
}

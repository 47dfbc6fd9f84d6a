package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/toodle/internal/ui"
	"github.com/amonks/toodle/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(todos []todo.Todo, prefixLengths map[string]int, now time.Time) {
	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return
	}

	fmt.Print(formatTodoTable(todos, prefixLengths, ui.HighlightID, now))
}

func formatTodoTable(todos []todo.Todo, prefixLengths map[string]int, highlight func(string, int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"#", "ID", "DONE", "TEXT", "DUE"}, len(todos))

	if prefixLengths == nil {
		prefixLengths = todoIDPrefixLengths(todos)
	}

	for _, t := range todos {
		prefixLen := prefixLengths[strings.ToLower(t.ID)]
		builder.AddRow([]string{
			strconv.Itoa(t.Order + 1),
			highlight(t.ID, prefixLen),
			checkbox(t.Completed),
			ui.TruncateTableCell(t.Text),
			formatTodoDue(t, now),
		})
	}

	return builder.String()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func formatTodoDue(item todo.Todo, now time.Time) string {
	if !item.Scheduled() {
		return "-"
	}
	return ui.FormatDue(item.ScheduledAt, now)
}

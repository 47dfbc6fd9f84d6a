package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/toodle/internal/editor"
	"github.com/amonks/toodle/internal/listflags"
	internalstrings "github.com/amonks/toodle/internal/strings"
	"github.com/amonks/toodle/internal/ui"
	"github.com/amonks/toodle/todo"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a todo",
	Long: `Add a todo.

Words are joined with spaces. A date phrase anywhere in the text, like
"tomorrow 5pm" or "next friday", becomes the due date and is removed from
the todo's text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var addJSON bool

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long: `List todos in order.

The persisted completion filter applies unless --all or --filter overrides
it. Use --tag or one of the date filters to narrow the list further.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listTag      string
	listPastDue  bool
	listToday    bool
	listTomorrow bool
	listFilter   string
	listAll      bool
	listJSON     bool
)

// toggle
var toggleCmd = &cobra.Command{
	Use:   "toggle <ref>...",
	Short: "Mark todos done, or not done",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToggle,
}

// rm
var rmCmd = &cobra.Command{
	Use:     "rm <ref>...",
	Aliases: []string{"delete"},
	Short:   "Delete todos",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

// edit
var editCmd = &cobra.Command{
	Use:   "edit <ref> [text]...",
	Short: "Replace a todo's text",
	Long: `Replace a todo's text.

The new text is parsed again, so the due date follows whatever phrase it
contains. Completion and position are kept.

Without text, opens $VISUAL or $EDITOR on a TOML representation of the
todo.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

// mv
var mvCmd = &cobra.Command{
	Use:   "mv <from> <to>",
	Short: "Move a todo to another position",
	Args:  cobra.ExactArgs(2),
	RunE:  runMv,
}

// clear
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every todo",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var clearYes bool

func init() {
	rootCmd.AddCommand(addCmd, listCmd, toggleCmd, rmCmd, editCmd, mvCmd, clearCmd)

	listflags.AddJSONFlag(addCmd, &addJSON)

	listCmd.Flags().StringVar(&listTag, "tag", "", "Only todos with this #tag")
	listCmd.Flags().BoolVar(&listPastDue, "past-due", false, "Only open todos whose due date has passed")
	listCmd.Flags().BoolVar(&listToday, "today", false, "Only todos due later today")
	listCmd.Flags().BoolVar(&listTomorrow, "tomorrow", false, "Only todos due tomorrow")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Completion filter (all, hideCompleted, showCompletedOnly)")
	listflags.AddAllFlag(listCmd, &listAll)
	listflags.AddJSONFlag(listCmd, &listJSON)
	addListFlagAliases(listCmd)

	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := internalstrings.NormalizeWhitespace(strings.Join(args, " "))
	if err := todo.ValidateText(text); err != nil {
		return err
	}

	return withTodoStore(func(a *app, store *todo.Store) error {
		id := store.Add(text)
		st := store.State()
		item := st.Todos[st.Index(id)]
		a.logger.Debug("added todo", "id", id, "scheduled", item.Scheduled())

		if addJSON {
			return encodeJSONToStdout(item)
		}
		fmt.Printf("Added %s\n", formatTodoLine(item, todoIDPrefixLengths(st.Todos), store.Now()))
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	tag, err := listTagFilter()
	if err != nil {
		return err
	}

	return withTodoStore(func(a *app, store *todo.Store) error {
		st := store.State()
		completion := st.CompletionFilter
		if listAll && listFilter != "" {
			return fmt.Errorf("--all and --filter cannot be combined")
		}
		if listAll {
			completion = todo.FilterAll
		}
		if listFilter != "" {
			completion, err = todo.ParseCompletionFilter(listFilter)
			if err != nil {
				return err
			}
		}

		now := store.Now()
		items := todo.FilteredView(st.Todos, tag, completion, now)
		if listJSON {
			if items == nil {
				items = []todo.Todo{}
			}
			return encodeJSONToStdout(items)
		}

		printTodoTable(items, todoIDPrefixLengths(st.Todos), now)
		return nil
	})
}

// listTagFilter returns the tag or built-in filter selected by list flags.
func listTagFilter() (string, error) {
	var selected []string
	if listTag != "" {
		tag := listTag
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		selected = append(selected, tag)
	}
	if listPastDue {
		selected = append(selected, todo.PastDueFilter)
	}
	if listToday {
		selected = append(selected, todo.TodayFilter)
	}
	if listTomorrow {
		selected = append(selected, todo.TomorrowFilter)
	}

	switch len(selected) {
	case 0:
		return "", nil
	case 1:
		return selected[0], nil
	default:
		return "", fmt.Errorf("--tag, --past-due, --today and --tomorrow cannot be combined")
	}
}

func runToggle(cmd *cobra.Command, args []string) error {
	return withTodoStore(func(a *app, store *todo.Store) error {
		items, err := resolveRefs(store.State().Todos, args)
		if err != nil {
			return err
		}

		now := store.Now()
		for _, item := range items {
			store.ToggleCompleted(item.ID)
			st := store.State()
			updated := st.Todos[st.Index(item.ID)]
			verb := "Reopened"
			if updated.Completed {
				verb = "Completed"
			}
			fmt.Printf("%s %s\n", verb, formatTodoLine(updated, todoIDPrefixLengths(st.Todos), now))
		}
		return nil
	})
}

func runRm(cmd *cobra.Command, args []string) error {
	return withTodoStore(func(a *app, store *todo.Store) error {
		todos := store.State().Todos
		items, err := resolveRefs(todos, args)
		if err != nil {
			return err
		}

		prefixLengths := todoIDPrefixLengths(todos)
		now := store.Now()
		for _, item := range items {
			store.Delete(item.ID)
			fmt.Printf("Deleted %s\n", formatTodoLine(item, prefixLengths, now))
		}
		return nil
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	text := internalstrings.NormalizeWhitespace(strings.Join(args[1:], " "))
	useEditor := len(args) == 1
	if useEditor && !editor.Available() {
		return fmt.Errorf("no text given and no editor available; set $EDITOR or pass the new text")
	}
	if !useEditor {
		if err := todo.ValidateText(text); err != nil {
			return err
		}
	}

	return withTodoStore(func(a *app, store *todo.Store) error {
		item, err := todo.ResolveRef(store.State().Todos, args[0])
		if err != nil {
			return err
		}

		completed := item.Completed
		if useEditor {
			parsed, err := editor.EditTodo(item, store.Now())
			if err != nil {
				return err
			}
			text = parsed.Text
			completed = parsed.Completed
		}

		store.Update(item.ID, text)
		if completed != item.Completed {
			store.ToggleCompleted(item.ID)
		}
		st := store.State()
		updated := st.Todos[st.Index(item.ID)]
		fmt.Printf("Updated %s\n", formatTodoLine(updated, todoIDPrefixLengths(st.Todos), store.Now()))
		return nil
	})
}

func runMv(cmd *cobra.Command, args []string) error {
	return withTodoStore(func(a *app, store *todo.Store) error {
		todos := store.State().Todos
		from, err := parsePosition(args[0], len(todos))
		if err != nil {
			return err
		}
		to, err := parsePosition(args[1], len(todos))
		if err != nil {
			return err
		}

		item := todos[from]
		if !store.Reorder(from, to) {
			return fmt.Errorf("%w: cannot move %d to %d", todo.ErrInvalidPosition, from+1, to+1)
		}
		fmt.Printf("Moved %s to %d\n", formatTodoLine(item, todoIDPrefixLengths(todos), store.Now()), to+1)
		return nil
	})
}

// parsePosition converts a 1-based position into a canonical index.
func parsePosition(value string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", todo.ErrInvalidPosition, value)
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: %d (have %d todos)", todo.ErrInvalidPosition, n, count)
	}
	return n - 1, nil
}

func runClear(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	return withTodoStore(func(a *app, store *todo.Store) error {
		count := len(store.State().Todos)
		if count == 0 {
			fmt.Fprintln(out, "No todos to clear.")
			return nil
		}

		if clearYes {
			store.ClearAll()
		} else {
			prompter := todo.StdioPrompter{In: cmd.InOrStdin(), Out: out}
			cleared, err := store.ClearAllConfirmed(prompter)
			if err != nil {
				return err
			}
			if !cleared {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}
		fmt.Fprintf(out, "Cleared %d %s.\n", count, pluralize(count, "todo", "todos"))
		return nil
	})
}

// resolveRefs resolves every ref against the same snapshot, so positions
// do not shift as earlier refs are acted on. Duplicates are dropped.
func resolveRefs(todos []todo.Todo, refs []string) ([]todo.Todo, error) {
	seen := make(map[string]bool, len(refs))
	items := make([]todo.Todo, 0, len(refs))
	var errs []error
	for _, ref := range refs {
		item, err := todo.ResolveRef(todos, ref)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref, err))
			continue
		}
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func todoIDPrefixLengths(todos []todo.Todo) map[string]int {
	index := todo.NewIDIndex(todos)
	return index.PrefixLengths()
}

func formatTodoLine(item todo.Todo, prefixLengths map[string]int, now time.Time) string {
	id := ui.HighlightID(item.ID, ui.PrefixLength(prefixLengths, item.ID))
	line := fmt.Sprintf("%s %q", id, item.Text)
	if item.Scheduled() {
		line += " due " + ui.FormatDue(item.ScheduledAt, now)
	}
	return line
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

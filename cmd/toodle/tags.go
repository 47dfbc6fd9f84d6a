package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/amonks/toodle/internal/listflags"
	"github.com/amonks/toodle/internal/ui"
	"github.com/amonks/toodle/todo"
)

// tags
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with their colors and counts",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var tagsJSON bool

// filter
var filterCmd = &cobra.Command{
	Use:   "filter [all|hideCompleted|showCompletedOnly]",
	Short: "Show or set the completion filter",
	Long: `Show or set the completion filter.

The filter is saved and applies to both the interactive list and the
list command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(tagsCmd, filterCmd)

	listflags.AddJSONFlag(tagsCmd, &tagsJSON)
}

type tagSummary struct {
	Tag        string `json:"tag"`
	Count      int    `json:"count"`
	Open       int    `json:"open"`
	Slot       int    `json:"slot"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

func summarizeTags(st todo.State) []tagSummary {
	tags := st.AllTags()
	summaries := make([]tagSummary, 0, len(tags))
	for _, tag := range tags {
		colors := todo.ColorsForTag(tag, st.TagColors)
		summary := tagSummary{
			Tag:        tag,
			Slot:       st.TagColors[tag],
			Background: colors.Background,
			Foreground: colors.Foreground,
		}
		for _, t := range st.Todos {
			if !todo.HasTag(t.Text, tag) {
				continue
			}
			summary.Count++
			if !t.Completed {
				summary.Open++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func runTags(cmd *cobra.Command, args []string) error {
	return withTodoStore(func(a *app, store *todo.Store) error {
		summaries := summarizeTags(store.State())
		if tagsJSON {
			return encodeJSONToStdout(summaries)
		}
		if len(summaries) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		builder := ui.NewTableBuilder([]string{"TAG", "OPEN", "TOTAL", "COLOR"}, len(summaries))
		for _, s := range summaries {
			builder.AddRow([]string{
				renderTag(s),
				fmt.Sprintf("%d", s.Open),
				fmt.Sprintf("%d", s.Count),
				s.Background,
			})
		}
		fmt.Print(builder.String())
		return nil
	})
}

func renderTag(s tagSummary) string {
	if !ui.ColorEnabled() {
		return s.Tag
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.Background)).
		Foreground(lipgloss.Color(s.Foreground)).
		Render(s.Tag)
}

func runFilter(cmd *cobra.Command, args []string) error {
	return withTodoStore(func(a *app, store *todo.Store) error {
		if len(args) == 0 {
			fmt.Println(store.State().CompletionFilter)
			return nil
		}

		mode, err := todo.ParseCompletionFilter(args[0])
		if err != nil {
			return err
		}
		if store.SetCompletionFilter(mode) {
			a.logger.Debug("completion filter changed", "filter", mode)
		}
		fmt.Println(mode)
		return nil
	})
}

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/toodle/internal/listflags"
	"github.com/amonks/toodle/internal/logging"
	"github.com/amonks/toodle/internal/ui"
	"github.com/amonks/toodle/schedule"
)

// parse
var parseCmd = &cobra.Command{
	Use:   "parse <text>...",
	Short: "Show how text would be scheduled",
	Long: `Show how text would be scheduled, without adding a todo.

Exits with status 2 when no date phrase is recognized.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var parseJSON bool

var errNoSchedule = errors.New("no date found")

func init() {
	rootCmd.AddCommand(parseCmd)

	listflags.AddJSONFlag(parseCmd, &parseJSON)
}

type parseOutput struct {
	Text         string  `json:"text"`
	ScheduledAt  *string `json:"scheduledAt"`
	ScheduleText *string `json:"scheduleText"`
	Class        string  `json:"class"`
}

func newParseOutput(result schedule.Result, now time.Time) parseOutput {
	out := parseOutput{
		Text:         result.CleanedText,
		ScheduleText: result.ScheduleText,
		Class:        schedule.Classify(result.ScheduledAt, now).String(),
	}
	if result.ScheduledAt != nil {
		at := schedule.FormatISO(*result.ScheduledAt)
		out.ScheduledAt = &at
	}
	return out
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := newApp(logging.Options{}, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	now := a.now()
	input := strings.Join(args, " ")
	result := a.cfg.Parser().Parse(input, now)
	a.logger.Debug("parsed", "input", input, "scheduled", result.Scheduled())

	if parseJSON {
		if err := encodeJSONToStdout(newParseOutput(result, now)); err != nil {
			return err
		}
	} else {
		fmt.Print(formatParseResult(result, now))
	}

	if !result.Scheduled() {
		return exitError{code: 2, err: errNoSchedule}
	}
	return nil
}

func formatParseResult(result schedule.Result, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "text:   %s\n", result.CleanedText)
	if !result.Scheduled() {
		b.WriteString("due:    -\n")
		return b.String()
	}
	fmt.Fprintf(&b, "due:    %s\n", ui.FormatDue(result.ScheduledAt, now))
	fmt.Fprintf(&b, "phrase: %s\n", *result.ScheduleText)
	fmt.Fprintf(&b, "class:  %s\n", schedule.Classify(result.ScheduledAt, now))
	return b.String()
}

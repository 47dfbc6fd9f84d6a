// Package main implements the toodle CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "toodle",
	Short: "Toodle - a todo list that reads due dates out of what you type",
	Long: `Toodle keeps an ordered todo list with #tags and natural-language due dates.

Run without a subcommand to open the interactive list. When stdout is not a
terminal the list is printed instead.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !stdoutIsTerminal() {
		return runList(cmd, args)
	}
	return runInteractive(cmd)
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amonks/toodle/dispatch"
	"github.com/amonks/toodle/internal/markdown"
)

const defaultShortcutsWidth = 80

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Show the interactive list's keyboard shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rendered := markdown.SafeRender(shortcutsWidth(), 0, []byte(dispatch.ShortcutsMarkdown()))
		fmt.Print(string(rendered))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shortcutsCmd)
}

func shortcutsWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultShortcutsWidth
	}
	return width
}

// Package listflags holds flags shared by commands that print todos.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag that includes completed todos
// regardless of the saved completion filter.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().BoolP("all", "a", false, "Include completed todos")
		return
	}

	cmd.Flags().BoolVarP(target, "all", "a", false, "Include completed todos")
}

// AddJSONFlag adds a shared --json flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output as JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}

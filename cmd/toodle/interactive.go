package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/toodle/dispatch"
	"github.com/amonks/toodle/internal/logging"
	"github.com/amonks/toodle/internal/tui"
)

func runInteractive(cmd *cobra.Command) error {
	logPath, err := interactiveLogPath()
	if err != nil {
		return err
	}
	a, err := newApp(logging.Options{File: logPath}, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.openStore()
	if err != nil {
		return err
	}
	a.logger.Info("starting", "dir", a.storage.Dir(), "todos", len(store.State().Todos))

	if err := tui.Run(cmd.Context(), dispatch.New(store, a.logger), a.logger); err != nil {
		return err
	}
	return store.PersistError()
}

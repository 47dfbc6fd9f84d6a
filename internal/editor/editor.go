// Package editor edits todos in the user's $EDITOR.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

const fallbackEditor = "vi"

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Configured reports whether $VISUAL or $EDITOR names an editor.
func Configured() bool {
	return len(configuredCommand()) > 0
}

// Available reports whether Edit can reasonably run: either an editor is
// configured, or stdin is a terminal the fallback editor can use.
func Available() bool {
	return Configured() || IsInteractive()
}

// Command returns the editor command line: $VISUAL, then $EDITOR, then vi.
// Values may carry arguments, like "code --wait".
func Command() []string {
	if argv := configuredCommand(); len(argv) > 0 {
		return argv
	}
	return []string{fallbackEditor}
}

func configuredCommand() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	return nil
}

// Edit opens the given file in the editor and waits for it to exit.
// Returns nil if the editor exits with status 0, otherwise returns an error.
func Edit(path string) error {
	argv := append(Command(), path)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}

	return nil
}

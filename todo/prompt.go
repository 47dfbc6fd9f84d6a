package todo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter is used to ask the user for confirmation.
type Prompter interface {
	// Confirm asks the user a yes/no question and returns true if they say yes.
	Confirm(message string) (bool, error)
}

// StdioPrompter implements Prompter using stdin and stdout.
type StdioPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm asks the user a yes/no question.
func (p StdioPrompter) Confirm(message string) (bool, error) {
	in, out := p.In, p.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s [y/n]: ", message)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ClearAllConfirmed asks p before clearing every todo. It reports whether the
// todos were cleared.
func (s *Store) ClearAllConfirmed(p Prompter) (bool, error) {
	ok, err := p.Confirm("Are you sure you want to clear all todos?")
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	if !ok {
		return false, nil
	}
	s.ClearAll()
	return true, nil
}

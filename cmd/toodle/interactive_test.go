package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/amonks/toodle/internal/testsupport"
	"github.com/amonks/toodle/internal/todoenv"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, out *lockedBuffer, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output %q", want, out.String())
}

func TestRootOpensInteractiveListOnTerminal(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and runs the binary")
	}
	bin := testsupport.BuildToodle(t)
	home := testsupport.SetupTestHome(t)

	cmd := exec.Command(bin)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"TERM=xterm-256color",
		"TZ=UTC",
		todoenv.NowEnvVar+"="+testsupport.ScriptNow,
	)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("start in pty: %v", err)
	}
	defer ptmx.Close()

	var out lockedBuffer
	go func() {
		_, _ = io.Copy(&out, ptmx)
	}()

	waitForOutput(t, &out, "Press / to add one", 20*time.Second)

	if _, err := ptmx.Write([]byte("q")); err != nil {
		t.Fatalf("send quit: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			t.Fatalf("expected clean exit, got status %d: %q", exitErr.ExitCode(), out.String())
		}
		if err != nil {
			t.Fatalf("wait: %v", err)
		}
	case <-time.After(10 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatalf("timed out waiting for exit: %q", out.String())
	}
}

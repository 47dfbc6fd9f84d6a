package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/toodle/internal/todoenv"
	"github.com/amonks/toodle/todo"
)

// ScriptNow is the instant scripts run at unless they set TOODLE_NOW
// themselves.
const ScriptNow = "2024-01-01T10:00:00Z"

var (
	buildOnce  sync.Once
	toodlePath string
	buildErr   error
)

// BuildToodle builds the toodle binary once and returns its path.
func BuildToodle(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "toodle-bin-")
		if err != nil {
			buildErr = err
			return
		}

		toodlePath = filepath.Join(binDir, "toodle")
		cmd := exec.Command("go", "build", "-o", toodlePath, "./cmd/toodle")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build toodle: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return toodlePath
}

// SetupScriptEnv configures common environment variables for testscript.
// Scripts run in UTC at ScriptNow with a fresh home directory.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TOODLE", BuildToodle(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TZ", "UTC")
	env.Setenv("NO_COLOR", "1")
	env.Setenv(todoenv.NowEnvVar, ScriptNow)
	return nil
}

// CmdTodoID finds a todo by text in `toodle list --json` output and stores
// its ID in an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TEXT VAR")
	}

	var items []todo.Todo
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}

	text := args[1]
	for _, item := range items {
		if item.Text == text {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("todo with text %q not found", text)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}

package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// EnsureHomeDirs creates the default data, state, and config directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	for _, dir := range []string{
		filepath.Join(homeDir, ".local", "share", "toodle"),
		filepath.Join(homeDir, ".local", "state", "toodle"),
		filepath.Join(homeDir, ".config", "toodle"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// SetupTestHome creates a temp home directory, ensures toodle's dirs, and sets HOME.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	return homeDir
}

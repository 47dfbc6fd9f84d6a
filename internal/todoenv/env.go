// Package todoenv reads toodle's environment overrides.
package todoenv

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// NowEnvVar pins the reference instant, as RFC 3339, for scripted use.
	NowEnvVar = "TOODLE_NOW"
	// DataDirEnvVar overrides the data directory.
	DataDirEnvVar = "TOODLE_DATA_DIR"
	// ConfigEnvVar overrides the config file path.
	ConfigEnvVar = "TOODLE_CONFIG"
)

// Clock returns the clock implied by the environment. When NowEnvVar is set
// the clock is frozen at that instant, in the local zone.
func Clock() (func() time.Time, error) {
	value := strings.TrimSpace(os.Getenv(NowEnvVar))
	if value == "" {
		return time.Now, nil
	}
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", NowEnvVar, err)
	}
	now = now.Local()
	return func() time.Time { return now }, nil
}

// DataDir returns the data directory override, or "".
func DataDir() string {
	return strings.TrimSpace(os.Getenv(DataDirEnvVar))
}

// ConfigPath returns the config path override, or "".
func ConfigPath() string {
	return strings.TrimSpace(os.Getenv(ConfigEnvVar))
}

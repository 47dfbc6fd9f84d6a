// Package config handles loading toodle's config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/toodle/internal/paths"
	"github.com/amonks/toodle/internal/todoenv"
	"github.com/amonks/toodle/schedule"
)

// ErrInvalidConfig indicates a config value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the config.toml file.
type Config struct {
	Storage  Storage  `toml:"storage"`
	Schedule Schedule `toml:"schedule"`
	Log      Log      `toml:"log"`
}

// Storage contains storage-related configuration.
type Storage struct {
	// Dir is the directory holding persisted todos.
	Dir string `toml:"dir"`
}

// Schedule contains due-date parsing configuration.
type Schedule struct {
	// DefaultHour is used when a phrase names a date without a time.
	DefaultHour int `toml:"default-hour"`
	// EveningHour replaces DefaultHour for phrases mentioning "tonight".
	EveningHour int `toml:"evening-hour"`
}

// Log contains diagnostics configuration.
type Log struct {
	// Level is one of debug, info, warn, or error.
	Level string `toml:"level"`
	// File redirects diagnostics to a file instead of stderr.
	File string `toml:"file"`
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() *Config {
	return &Config{
		Schedule: Schedule{
			DefaultHour: schedule.DefaultHour,
			EveningHour: schedule.EveningHour,
		},
		Log: Log{Level: "warn"},
	}
}

// Load loads configuration from TOODLE_CONFIG or the default config path.
// Returns the defaults if no config file exists. The data directory override
// from the environment takes precedence over the file.
func Load() (*Config, error) {
	path := todoenv.ConfigPath()
	if path == "" {
		var err error
		path, err = paths.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if dir := todoenv.DataDir(); dir != "" {
		cfg.Storage.Dir = dir
	}
	if cfg.Storage.Dir == "" {
		dir, err := paths.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.Storage.Dir = dir
	}
	return cfg, nil
}

// LoadFile loads a single config file layered over Defaults.
func LoadFile(path string) (*Config, error) {
	fileCfg, meta, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(Defaults(), fileCfg, meta)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return merged, nil
}

// Validate reports values outside their allowed range.
func (c *Config) Validate() error {
	if c.Schedule.DefaultHour < 0 || c.Schedule.DefaultHour > 23 {
		return fmt.Errorf("%w: schedule.default-hour %d is not between 0 and 23", ErrInvalidConfig, c.Schedule.DefaultHour)
	}
	if c.Schedule.EveningHour < 0 || c.Schedule.EveningHour > 23 {
		return fmt.Errorf("%w: schedule.evening-hour %d is not between 0 and 23", ErrInvalidConfig, c.Schedule.EveningHour)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// Parser returns a schedule parser using the configured hours.
func (c *Config) Parser() schedule.Parser {
	return schedule.Parser{
		DefaultHour: c.Schedule.DefaultHour,
		EveningHour: c.Schedule.EveningHour,
	}
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(defaults, fileCfg *Config, fileMeta toml.MetaData) *Config {
	if fileCfg == nil {
		fileCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Dir = mergeString(fileMeta.IsDefined("storage", "dir"), fileCfg.Storage.Dir, defaults.Storage.Dir)
	merged.Schedule.DefaultHour = mergeInt(fileMeta.IsDefined("schedule", "default-hour"), fileCfg.Schedule.DefaultHour, defaults.Schedule.DefaultHour)
	merged.Schedule.EveningHour = mergeInt(fileMeta.IsDefined("schedule", "evening-hour"), fileCfg.Schedule.EveningHour, defaults.Schedule.EveningHour)
	merged.Log.Level = strings.ToLower(mergeString(fileMeta.IsDefined("log", "level"), fileCfg.Log.Level, defaults.Log.Level))
	merged.Log.File = mergeString(fileMeta.IsDefined("log", "file"), fileCfg.Log.File, defaults.Log.File)

	return &merged
}

func mergeString(fileDefined bool, fileValue, defaultValue string) string {
	value := defaultValue
	if fileDefined {
		value = fileValue
	}
	return strings.TrimSpace(value)
}

func mergeInt(fileDefined bool, fileValue, defaultValue int) int {
	if fileDefined {
		return fileValue
	}
	return defaultValue
}

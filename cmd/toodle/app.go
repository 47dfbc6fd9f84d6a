package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amonks/toodle/internal/config"
	"github.com/amonks/toodle/internal/logging"
	"github.com/amonks/toodle/internal/paths"
	"github.com/amonks/toodle/internal/state"
	"github.com/amonks/toodle/internal/todoenv"
	"github.com/amonks/toodle/todo"
)

const interactiveLogName = "toodle.log"

// app carries what every command needs: the loaded config, the logger, the
// clock, and the storage directory.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	now      func() time.Time
	storage  *state.Store
	closeLog func() error
}

func newApp(logOpts logging.Options, fallback io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	now, err := todoenv.Clock()
	if err != nil {
		return nil, err
	}

	logOpts.Level = cfg.Log.Level
	if cfg.Log.File != "" {
		logOpts.File = cfg.Log.File
	}
	logger, closeLog, err := logging.Open(logOpts, fallback)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		now:      now,
		storage:  state.NewStore(cfg.Storage.Dir),
		closeLog: closeLog,
	}, nil
}

func (a *app) close() {
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
}

func (a *app) openStore() (*todo.Store, error) {
	parser := a.cfg.Parser()
	return todo.Open(todo.OpenOptions{
		Backend: a.storage,
		Logger:  a.logger,
		Now:     a.now,
		Parser:  &parser,
	})
}

// withTodoStore opens the todo store while holding the storage lock, runs
// fn, and reports any write that failed along the way.
func withTodoStore(fn func(a *app, store *todo.Store) error) error {
	a, err := newApp(logging.Options{}, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	return a.storage.WithLock(func() error {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		if err := fn(a, store); err != nil {
			return err
		}
		return store.PersistError()
	})
}

// interactiveLogPath is where the full-screen list logs, so diagnostics do
// not draw over it.
func interactiveLogPath() (string, error) {
	dir, err := paths.DefaultStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, interactiveLogName), nil
}

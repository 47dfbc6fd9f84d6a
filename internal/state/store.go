// Package state manages toodle's local key/value storage.
//
// Each key holds one JSON document stored as its own file under the data
// directory (~/.local/share/toodle by default). Writes go through a temp file
// and rename, so a crash never leaves a half-written value behind.
// Read-modify-write sequences from separate processes are serialized with
// WithLock.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/peterbourgon/diskv/v3"
)

// ErrInvalidKey indicates a key that cannot name a storage file.
var ErrInvalidKey = errors.New("invalid state key")

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const cacheSizeMax = 1024 * 1024

// Store manages the key/value files with locking.
type Store struct {
	dir string
	d   *diskv.Diskv
}

// NewStore creates a new state store using the given directory.
func NewStore(dir string) *Store {
	return &Store{
		dir: dir,
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			TempDir:           filepath.Join(dir, ".tmp"),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      cacheSizeMax,
			PathPerm:          0o755,
			FilePerm:          0o644,
		}),
	}
}

// keyToPathTransform stores every key as a file directly under the base
// directory.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

// pathToKeyTransform ignores files in subdirectories, such as in-flight
// temp files.
func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) > 0 {
		return ""
	}
	return pathKey.FileName
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// lockPath returns the path to the lock file.
func (s *Store) lockPath() string {
	return filepath.Join(s.dir, ".lock")
}

// Load decodes the value stored under key into v. It reports false, with a
// nil error, when the key is absent.
func (s *Store) Load(key string, v any) (bool, error) {
	if !validKey.MatchString(key) {
		return false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	data, err := s.d.Read(key)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

// LoadRaw returns the stored bytes for key, or nil when absent.
func (s *Store) LoadRaw(key string) ([]byte, error) {
	if !validKey.MatchString(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	data, err := s.d.Read(key)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save encodes v as JSON and stores it under key. Writing a value identical
// to the stored one leaves the file untouched.
func (s *Store) Save(key string, v any) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if existing, err := s.readDirect(key); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", key, err)
	}

	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// readDirect bypasses the read cache so values written by another process
// are seen.
func (s *Store) readDirect(key string) ([]byte, error) {
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (s *Store) Keys() []string {
	cancel := make(chan struct{})
	defer close(cancel)
	var keys []string
	for key := range s.d.Keys(cancel) {
		if validKey.MatchString(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// WithLock runs fn while holding an exclusive lock on the store directory.
func (s *Store) WithLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}

// Package store persists the unified config document to disk.
//
// Writes are atomic (temporary file in the same directory, then rename), so a
// concurrent reader never observes a truncated document. Two processes writing
// at once still race to last-writer-wins; the store does not take file locks.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/config/errz"
)

const (
	// DirName is the per-user configuration directory under $HOME.
	DirName = ".ccswitch"
	// FileName is the unified store document inside DirName.
	FileName = "config.json"
	// BackupDirName is the backup directory inside DirName.
	BackupDirName = "backups"
)

// Store reads and writes the unified config document at a fixed path.
type Store struct {
	path string
}

// New returns a Store for the given document path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPathIn returns the unified store path under the given home directory.
func DefaultPathIn(home string) string {
	return filepath.Join(home, DirName, FileName)
}

// NewDefault returns a Store rooted at ~/.ccswitch/config.json.
func NewDefault() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: resolve home directory: %v", errz.ErrIO, err)
	}
	return New(filepath.Join(home, DirName, FileName)), nil
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the configuration directory holding the document.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// BackupDir returns the backup directory under the configuration directory.
func (s *Store) BackupDir() string {
	return filepath.Join(s.Dir(), BackupDirName)
}

// Load reads the persisted document. A missing file yields the default empty
// config; the caller decides whether to create it on first save.
func (s *Store) Load() (*config.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("%w: read config file '%s': %v", errz.ErrIO, s.path, err)
	}

	cfg, err := config.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load config file '%s': %w", s.path, err)
	}
	return cfg, nil
}

// Save serializes cfg and atomically replaces the persisted document.
func (s *Store) Save(cfg *config.Config) error {
	data, err := cfg.Bytes()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return fmt.Errorf("%w: ensure config directory '%s': %v", errz.ErrIO, s.Dir(), err)
	}

	// Write to a temporary file in the same directory so the rename is atomic.
	tmp, err := os.CreateTemp(s.Dir(), FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in '%s': %v", errz.ErrIO, s.Dir(), err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp config: %v", errz.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp config: %v", errz.ErrIO, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replace config file '%s': %v", errz.ErrIO, s.path, err)
	}
	return nil
}

// Exists reports whether the persisted document is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Remove deletes the persisted document. Removing a missing file is not an
// error; the next Load returns the default config.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove config file '%s': %v", errz.ErrIO, s.path, err)
	}
	return nil
}

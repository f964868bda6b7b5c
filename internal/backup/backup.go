// Package backup snapshots the unified config file before destructive
// operations. Every snapshot is a plain copy of the config JSON named with the
// creation time and a unique suffix, so backups sort chronologically and never
// collide.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/ccswitch/ccswitch/internal/config/store"
	"github.com/gofrs/uuid/v5"
)

const (
	filePrefix = "config-"
	fileSuffix = ".json"

	timestampLayout = "20060102-150405"
)

// Entry describes one snapshot on disk.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Manager creates and enumerates snapshots of one store's config file.
type Manager struct {
	store  *store.Store
	dir    string
	logger *slog.Logger
}

// New creates a Manager writing snapshots into the store's backup directory.
func New(st *store.Store) *Manager {
	return &Manager{
		store:  st,
		dir:    st.BackupDir(),
		logger: slog.Default().WithGroup("backup"),
	}
}

// Dir returns the snapshot directory.
func (m *Manager) Dir() string {
	return m.dir
}

// CreateBackup copies the current config file into the snapshot directory and
// returns the snapshot path. When no config file exists yet, the default
// document is recorded instead, so a later restore always has something to go
// back to.
func (m *Manager) CreateBackup() (string, error) {
	data, err := os.ReadFile(m.store.Path())
	if errors.Is(err, fs.ErrNotExist) {
		data, err = config.Default().Bytes()
	}
	if err != nil {
		return "", fmt.Errorf("%w: reading config for backup: %w", errz.ErrIO, err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", errz.ErrIO, m.dir, err)
	}

	id := uuid.Must(uuid.NewV6())
	name := fmt.Sprintf("%s%s-%s%s",
		filePrefix, time.Now().UTC().Format(timestampLayout), id, fileSuffix)
	path := filepath.Join(m.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing backup %s: %w", errz.ErrIO, path, err)
	}

	m.logger.Info("created config backup", "path", path, "bytes", len(data))
	return path, nil
}

// List returns all snapshots, newest first. A missing snapshot directory is
// an empty list, not an error.
func (m *Manager) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(m.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", errz.ErrIO, m.dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			Path:    filepath.Join(m.dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Names embed a UTC timestamp, so lexical order is chronological.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name > entries[j].Name
	})
	return entries, nil
}

// Prune removes the oldest snapshots until at most keep remain. Returns the
// number of snapshots removed.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	entries, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(entries) <= keep {
		return 0, nil
	}

	removed := 0
	var errs []error
	for _, e := range entries[keep:] {
		if err := os.Remove(e.Path); err != nil {
			errs = append(errs, fmt.Errorf("%w: removing %s: %w", errz.ErrIO, e.Path, err))
			continue
		}
		removed++
	}
	if removed > 0 {
		m.logger.Info("pruned old backups", "removed", removed, "kept", keep)
	}
	return removed, errors.Join(errs...)
}

// Load reads and parses one snapshot back into a config.
func (m *Manager) Load(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: backup %s", errz.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading backup %s: %w", errz.ErrIO, path, err)
	}
	return config.FromBytes(data)
}

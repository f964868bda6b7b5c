// Package settings persists user preferences in a small JSON file next to the
// unified config. Unknown keys written by other tools survive a load and save
// cycle untouched.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/ccswitch/ccswitch/internal/config/store"
)

// FileName is the settings file name inside the application directory.
const FileName = "settings.json"

const (
	keyPluginIntegration = "enableClaudePluginIntegration"
	keyLanguage          = "language"
)

// Settings holds the recognized preferences. The raw document backing them is
// kept by the File so unrecognized keys round-trip.
type Settings struct {
	EnableClaudePluginIntegration bool
	Language                      string
}

// File reads and writes one settings file.
type File struct {
	path string
	raw  map[string]any
}

// New creates a File over an explicit path.
func New(path string) *File {
	return &File{path: path, raw: map[string]any{}}
}

// PathIn returns the settings file path under the given home directory.
func PathIn(home string) string {
	return filepath.Join(home, store.DirName, FileName)
}

// Path returns the settings file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the settings file. A missing file yields zero-value settings.
func (f *File) Load() (Settings, error) {
	var s Settings

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.raw = map[string]any{}
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%w: reading %s: %w", errz.ErrIO, f.path, err)
	}

	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("%w: settings file %s: %w", errz.ErrParse, f.path, err)
	}
	f.raw = raw

	if v, ok := raw[keyPluginIntegration].(bool); ok {
		s.EnableClaudePluginIntegration = v
	}
	if v, ok := raw[keyLanguage].(string); ok {
		s.Language = v
	}
	return s, nil
}

// Save merges the recognized fields over the last loaded document and writes
// the result atomically. Keys this program does not recognize are preserved.
func (f *File) Save(s Settings) error {
	if f.raw == nil {
		f.raw = map[string]any{}
	}
	f.raw[keyPluginIntegration] = s.EnableClaudePluginIntegration
	if s.Language != "" {
		f.raw[keyLanguage] = s.Language
	} else {
		delete(f.raw, keyLanguage)
	}

	data, err := json.MarshalIndent(f.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding settings: %w", errz.ErrIO, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", errz.ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file in %s: %w", errz.ErrIO, dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %w", errz.ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing %s: %w", errz.ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %w", errz.ErrIO, f.path, err)
	}
	return nil
}

// Package livefile reads and writes each application's own live configuration
// file. It is the only package permitted to touch live files; the sync engine
// and the plugin integration rule both route through it so the
// preserve-unknown-keys invariant holds in exactly one tested place.
package livefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/config/errz"
)

// Reserved live-file keys owned by the sync contract. Everything else in a
// live file belongs to the owning application.
const (
	// McpKeyJSON is the MCP servers section key in Claude and Gemini live files.
	McpKeyJSON = "mcpServers"
	// McpKeyTOML is the MCP servers section key in the Codex live file.
	McpKeyTOML = "mcp_servers"
	// PrimaryAPIKeyField is the Claude plugin integration marker key.
	PrimaryAPIKeyField = "primaryApiKey"
)

// Adapter resolves per-application live file paths under a home directory and
// performs read/modify/write cycles on them.
type Adapter struct {
	home string
}

// New returns an Adapter rooted at the given home directory.
func New(home string) *Adapter {
	return &Adapter{home: home}
}

// NewDefault returns an Adapter rooted at the current user's home directory.
func NewDefault() (*Adapter, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: resolve home directory: %v", errz.ErrIO, err)
	}
	return New(home), nil
}

// McpLivePath returns the live file holding the MCP servers section for app.
func (a *Adapter) McpLivePath(app config.AppType) string {
	switch app {
	case config.AppClaude:
		return filepath.Join(a.home, ".claude.json")
	case config.AppCodex:
		return filepath.Join(a.home, ".codex", "config.toml")
	case config.AppGemini:
		return filepath.Join(a.home, ".gemini", "settings.json")
	default:
		return ""
	}
}

// PluginConfigPath returns the Claude config file holding the plugin
// integration marker key.
func (a *Adapter) PluginConfigPath() string {
	return filepath.Join(a.home, ".claude", "config.json")
}

// McpKey returns the reserved MCP section key for app's live file format.
func (a *Adapter) McpKey(app config.AppType) string {
	if app == config.AppCodex {
		return McpKeyTOML
	}
	return McpKeyJSON
}

// codecFor picks the codec by file extension, mirroring how the live file
// formats differ per application.
func codecFor(path string) Codec {
	if filepath.Ext(path) == ".toml" {
		return tomlCodec{}
	}
	return jsonCodec{}
}

// ReadOrEmpty returns the parsed document at path, or an empty document when
// the file does not exist.
func (a *Adapter) ReadOrEmpty(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("%w: read live file '%s': %v", errz.ErrIO, path, err)
	}

	doc, err := codecFor(path).Decode(data)
	if err != nil {
		return nil, fmt.Errorf("live file '%s': %w", path, err)
	}
	return doc, nil
}

// Write serializes doc and writes it to path, creating parent directories as
// needed.
func (a *Adapter) Write(path string, doc Document) error {
	data, err := codecFor(path).Encode(doc)
	if err != nil {
		return fmt.Errorf("live file '%s': %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: ensure directory for '%s': %v", errz.ErrIO, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write live file '%s': %v", errz.ErrIO, path, err)
	}
	return nil
}

// MergeAndWrite performs one read/modify/write cycle: the document at path is
// read (or started empty), updates are merged per MergeKeys semantics, and the
// result is written back.
func (a *Adapter) MergeAndWrite(path string, updates map[string]any) error {
	doc, err := a.ReadOrEmpty(path)
	if err != nil {
		return err
	}
	return a.Write(path, MergeKeys(doc, updates))
}

// Package syncer projects the MCP section of the unified config into each
// application's live file, and imports live entries back into the registry.
package syncer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/ccswitch/ccswitch/internal/config/store"
	"github.com/ccswitch/ccswitch/internal/livefile"
)

// Engine decides, per application and per MCP server, what must be written
// into or removed from the live file. All live-file access goes through the
// livefile.Adapter.
type Engine struct {
	store  *store.Store
	files  *livefile.Adapter
	logger *slog.Logger
}

// New creates an Engine over the given store and live file adapter.
func New(st *store.Store, files *livefile.Adapter) *Engine {
	return &Engine{
		store:  st,
		files:  files,
		logger: slog.Default().WithGroup("syncer"),
	}
}

// launchSpec builds the live representation of one server entry. The launch
// specification is passed through opaquely.
func launchSpec(srv *config.McpServer) map[string]any {
	spec := map[string]any{"command": srv.Command}
	if len(srv.Args) > 0 {
		spec["args"] = srv.Args
	}
	if len(srv.Env) > 0 {
		spec["env"] = srv.Env
	}
	return spec
}

// SyncApp recomputes the MCP section for one application and replaces the
// reserved key in that application's live file. The section is a pure function
// of the unified config: live-side manual edits to the key do not survive.
// An application with no enabled servers gets an explicit empty section.
func (e *Engine) SyncApp(cfg *config.Config, app config.AppType) error {
	section := map[string]any{}
	for _, id := range cfg.Mcp.EnabledFor(app) {
		section[id] = launchSpec(cfg.Mcp.Servers[id])
	}

	path := e.files.McpLivePath(app)
	if err := e.files.MergeAndWrite(path, map[string]any{e.files.McpKey(app): section}); err != nil {
		return fmt.Errorf("sync MCP section for %s: %w", app, err)
	}

	e.logger.Debug("synced MCP section", "app", app, "servers", len(section), "path", path)
	return nil
}

// SyncAllEnabled projects the enabled server set into every application's
// live file. Each file is synchronized independently; a failure on one does
// not stop the others.
func (e *Engine) SyncAllEnabled(cfg *config.Config) error {
	var errs []error
	for _, app := range config.AllApps() {
		if err := e.SyncApp(cfg, app); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ToggleApp flips one server's enabled flag for one application, persists the
// unified config, then re-syncs only that application's live file.
func (e *Engine) ToggleApp(cfg *config.Config, serverID string, app config.AppType, enabled bool) error {
	srv, ok := cfg.Mcp.Servers[serverID]
	if !ok {
		return fmt.Errorf("%w: '%s'", errz.ErrServerNotFound, serverID)
	}

	srv.Apps.Set(app, enabled)

	if err := e.store.Save(cfg); err != nil {
		return err
	}
	return e.SyncApp(cfg, app)
}

// DeleteServer removes the entry from the registry and reports whether it
// existed. Applications that previously had the server enabled are re-synced
// so the entry disappears from their live files too.
func (e *Engine) DeleteServer(cfg *config.Config, serverID string) (bool, error) {
	srv, ok := cfg.Mcp.Servers[serverID]
	if !ok {
		return false, nil
	}

	affected := srv.Apps.EnabledApps()
	delete(cfg.Mcp.Servers, serverID)

	if err := e.store.Save(cfg); err != nil {
		return false, err
	}

	var errs []error
	for _, app := range affected {
		if err := e.SyncApp(cfg, app); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return true, err
	}

	e.logger.Info("deleted MCP server", "id", serverID, "removedFrom", len(affected))
	return true, nil
}

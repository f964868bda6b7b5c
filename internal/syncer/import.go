package syncer

import (
	"fmt"
	"log/slog"

	"github.com/ccswitch/ccswitch/internal/config"
)

// ImportFrom reads one application's live file, parses its MCP section, and
// inserts every entry not already present in the registry (matched by ID) with
// the apps flag set true only for the source application. Entries already
// present are never merged: first writer wins, so repeated imports are no-ops
// beyond the first. Returns the number of newly inserted entries.
func (e *Engine) ImportFrom(cfg *config.Config, app config.AppType) (int, error) {
	path := e.files.McpLivePath(app)
	doc, err := e.files.ReadOrEmpty(path)
	if err != nil {
		return 0, fmt.Errorf("import from %s: %w", app, err)
	}

	section := doc.Section(e.files.McpKey(app))
	if len(section) == 0 {
		return 0, nil
	}

	count := 0
	for id, raw := range section {
		if id == "" {
			continue
		}
		if _, exists := cfg.Mcp.Servers[id]; exists {
			continue
		}
		srv, ok := parseLiveEntry(id, raw)
		if !ok {
			e.logger.Warn("skipping malformed live MCP entry", "app", app, "id", id)
			continue
		}
		srv.Apps.Set(app, true)
		cfg.Mcp.Servers[id] = srv
		count++
	}

	if count == 0 {
		return 0, nil
	}
	if err := e.store.Save(cfg); err != nil {
		return 0, err
	}

	e.logger.Info("imported MCP servers", "app", app, "count", count,
		slog.String("path", path))
	return count, nil
}

// parseLiveEntry converts one live-file MCP entry into a registry entry. The
// launch spec keys are shared by all three live formats (command, args, env).
func parseLiveEntry(id string, raw any) (*config.McpServer, bool) {
	entry, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}

	command, _ := entry["command"].(string)
	if command == "" {
		return nil, false
	}

	srv := &config.McpServer{
		Name:    id,
		Command: command,
	}

	if rawArgs, ok := entry["args"].([]any); ok {
		for _, a := range rawArgs {
			if s, ok := a.(string); ok {
				srv.Args = append(srv.Args, s)
			}
		}
	}

	if rawEnv, ok := entry["env"].(map[string]any); ok && len(rawEnv) > 0 {
		srv.Env = make(map[string]string, len(rawEnv))
		for k, v := range rawEnv {
			if s, ok := v.(string); ok {
				srv.Env[k] = s
			}
		}
	}

	return srv, true
}

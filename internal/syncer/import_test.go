package syncer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFrom(t *testing.T) {
	t.Parallel()

	t.Run("inserts new entries enabled only for the source app", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		path := files.McpLivePath(config.AppClaude)
		require.NoError(t, os.WriteFile(path, []byte(`{
			"mcpServers": {
				"fetch": {"command": "npx", "args": ["-y", "mcp-server-fetch"]},
				"github": {"command": "mcp-server-github", "env": {"GITHUB_TOKEN": "tok"}}
			},
			"foo": "bar"
		}`), 0o644))

		count, err := e.ImportFrom(cfg, config.AppClaude)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		fetch := cfg.Mcp.Servers["fetch"]
		require.NotNil(t, fetch)
		assert.Equal(t, "npx", fetch.Command)
		assert.Equal(t, []string{"-y", "mcp-server-fetch"}, fetch.Args)
		assert.True(t, fetch.Apps.Claude)
		assert.False(t, fetch.Apps.Codex)
		assert.False(t, fetch.Apps.Gemini)

		github := cfg.Mcp.Servers["github"]
		require.NotNil(t, github)
		assert.Equal(t, map[string]string{"GITHUB_TOKEN": "tok"}, github.Env)
	})

	t.Run("import is idempotent beyond the first run", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		path := files.McpLivePath(config.AppGemini)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"mcpServers":{"fetch":{"command":"npx"}}}`), 0o644))

		count, err := e.ImportFrom(cfg, config.AppGemini)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = e.ImportFrom(cfg, config.AppGemini)
		require.NoError(t, err)
		assert.Equal(t, 0, count, "second import must count only new entries")
	})

	t.Run("colliding ids are never merged", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		seedServer(cfg, "fetch", config.AppFlags{Codex: true})
		original := cfg.Mcp.Servers["fetch"].Command

		path := files.McpLivePath(config.AppClaude)
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"mcpServers":{"fetch":{"command":"different"}}}`), 0o644))

		count, err := e.ImportFrom(cfg, config.AppClaude)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Equal(t, original, cfg.Mcp.Servers["fetch"].Command, "first writer wins")
		assert.False(t, cfg.Mcp.Servers["fetch"].Apps.Claude, "existing flags are untouched")
	})

	t.Run("missing live file imports nothing", func(t *testing.T) {
		e, cfg, _ := testEngine(t)
		count, err := e.ImportFrom(cfg, config.AppCodex)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("empty section imports nothing", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		path := files.McpLivePath(config.AppClaude)
		require.NoError(t, os.WriteFile(path, []byte(`{"mcpServers":{}}`), 0o644))

		count, err := e.ImportFrom(cfg, config.AppClaude)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("malformed entries are skipped", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		path := files.McpLivePath(config.AppClaude)
		require.NoError(t, os.WriteFile(path, []byte(`{
			"mcpServers": {
				"good": {"command": "npx"},
				"no-command": {"args": ["x"]},
				"scalar": "nope"
			}
		}`), 0o644))

		count, err := e.ImportFrom(cfg, config.AppClaude)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Contains(t, cfg.Mcp.Servers, "good")
		assert.NotContains(t, cfg.Mcp.Servers, "no-command")
		assert.NotContains(t, cfg.Mcp.Servers, "scalar")
	})

	t.Run("imports from a codex TOML live file", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		path := files.McpLivePath(config.AppCodex)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(
			"[mcp_servers.fetch]\ncommand = \"npx\"\nargs = [\"-y\", \"mcp-server-fetch\"]\n"), 0o644))

		count, err := e.ImportFrom(cfg, config.AppCodex)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		require.Contains(t, cfg.Mcp.Servers, "fetch")
		assert.True(t, cfg.Mcp.Servers["fetch"].Apps.Codex)
		assert.False(t, cfg.Mcp.Servers["fetch"].Apps.Claude)
	})

	t.Run("import persists the unified config", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		path := files.McpLivePath(config.AppClaude)
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"mcpServers":{"fetch":{"command":"npx"}}}`), 0o644))

		_, err := e.ImportFrom(cfg, config.AppClaude)
		require.NoError(t, err)

		reloaded, err := e.store.Load()
		require.NoError(t, err)
		assert.Contains(t, reloaded.Mcp.Servers, "fetch")
	})
}

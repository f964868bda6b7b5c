package syncer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/ccswitch/ccswitch/internal/config/store"
	"github.com/ccswitch/ccswitch/internal/livefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) (*Engine, *config.Config, *livefile.Adapter) {
	t.Helper()
	home := t.TempDir()
	st := store.New(filepath.Join(home, store.DirName, store.FileName))
	files := livefile.New(home)
	cfg := config.Default()
	require.NoError(t, st.Save(cfg))
	return New(st, files), cfg, files
}

func seedServer(cfg *config.Config, id string, apps config.AppFlags) {
	cfg.Mcp.Servers[id] = &config.McpServer{
		Name:    id,
		Command: "npx",
		Args:    []string{"-y", "mcp-server-" + id},
		Apps:    apps,
	}
}

func TestSyncApp(t *testing.T) {
	t.Parallel()

	t.Run("projects exactly the enabled set", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		seedServer(cfg, "fetch", config.AppFlags{Claude: true})
		seedServer(cfg, "fs", config.AppFlags{Codex: true})

		require.NoError(t, e.SyncApp(cfg, config.AppClaude))

		doc, err := files.ReadOrEmpty(files.McpLivePath(config.AppClaude))
		require.NoError(t, err)
		section := doc.Section(livefile.McpKeyJSON)
		require.NotNil(t, section)
		assert.Contains(t, section, "fetch")
		assert.NotContains(t, section, "fs")

		spec := section["fetch"].(map[string]any)
		assert.Equal(t, "npx", spec["command"])
	})

	t.Run("empty enabled set writes an explicit empty section", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		require.NoError(t, e.SyncApp(cfg, config.AppGemini))

		doc, err := files.ReadOrEmpty(files.McpLivePath(config.AppGemini))
		require.NoError(t, err)
		section, ok := doc[livefile.McpKeyJSON]
		require.True(t, ok, "reserved key should be present")
		assert.Empty(t, section)
	})

	t.Run("manual edits to the reserved key do not survive", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		path := files.McpLivePath(config.AppClaude)
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"mcpServers":{"rogue":{"command":"evil"}},"foo":"bar"}`), 0o644))

		require.NoError(t, e.SyncApp(cfg, config.AppClaude))

		doc, err := files.ReadOrEmpty(path)
		require.NoError(t, err)
		assert.NotContains(t, doc.Section(livefile.McpKeyJSON), "rogue")
		assert.Equal(t, "bar", doc["foo"], "unrelated key must survive")
	})

	t.Run("codex live file uses the TOML section key", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		seedServer(cfg, "fetch", config.AppFlags{Codex: true})

		require.NoError(t, e.SyncApp(cfg, config.AppCodex))

		doc, err := files.ReadOrEmpty(files.McpLivePath(config.AppCodex))
		require.NoError(t, err)
		require.Contains(t, doc.Section(livefile.McpKeyTOML), "fetch")
	})
}

func TestSyncAllEnabledIdempotence(t *testing.T) {
	t.Parallel()

	e, cfg, files := testEngine(t)
	seedServer(cfg, "fetch", config.AppFlags{Claude: true, Gemini: true})
	seedServer(cfg, "fs", config.AppFlags{Codex: true})

	require.NoError(t, e.SyncAllEnabled(cfg))

	snapshot := map[string][]byte{}
	for _, app := range config.AllApps() {
		data, err := os.ReadFile(files.McpLivePath(app))
		require.NoError(t, err)
		snapshot[string(app)] = data
	}

	require.NoError(t, e.SyncAllEnabled(cfg))

	for _, app := range config.AllApps() {
		data, err := os.ReadFile(files.McpLivePath(app))
		require.NoError(t, err)
		assert.Equal(t, string(snapshot[string(app)]), string(data),
			"second sync must be byte-identical for %s", app)
	}
}

func TestToggleApp(t *testing.T) {
	t.Parallel()

	t.Run("unknown server id", func(t *testing.T) {
		e, cfg, _ := testEngine(t)
		err := e.ToggleApp(cfg, "ghost", config.AppClaude, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrServerNotFound)
	})

	t.Run("enable then disable is reversible", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		seedServer(cfg, "fetch", config.AppFlags{})
		path := files.McpLivePath(config.AppClaude)
		require.NoError(t, os.WriteFile(path, []byte(`{"foo":"bar"}`), 0o644))

		require.NoError(t, e.SyncApp(cfg, config.AppClaude))
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, e.ToggleApp(cfg, "fetch", config.AppClaude, true))
		enabled, err := files.ReadOrEmpty(path)
		require.NoError(t, err)
		assert.Contains(t, enabled.Section(livefile.McpKeyJSON), "fetch")
		assert.Equal(t, "bar", enabled["foo"])

		require.NoError(t, e.ToggleApp(cfg, "fetch", config.AppClaude, false))
		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after),
			"disable must return the live MCP section to its pre-enable state")
	})

	t.Run("toggle persists the unified config", func(t *testing.T) {
		e, cfg, _ := testEngine(t)
		seedServer(cfg, "fetch", config.AppFlags{})

		require.NoError(t, e.ToggleApp(cfg, "fetch", config.AppCodex, true))

		reloaded, err := e.store.Load()
		require.NoError(t, err)
		assert.True(t, reloaded.Mcp.Servers["fetch"].Apps.Codex)
	})

	t.Run("toggle only touches the one application", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		seedServer(cfg, "fetch", config.AppFlags{})

		require.NoError(t, e.ToggleApp(cfg, "fetch", config.AppClaude, true))

		_, err := os.Stat(files.McpLivePath(config.AppGemini))
		assert.True(t, os.IsNotExist(err), "gemini live file should not be created")
	})
}

func TestDeleteServer(t *testing.T) {
	t.Parallel()

	t.Run("absent id reports false", func(t *testing.T) {
		e, cfg, _ := testEngine(t)
		existed, err := e.DeleteServer(cfg, "ghost")
		require.NoError(t, err)
		assert.False(t, existed)
	})

	t.Run("removes the entry from previously enabled live files", func(t *testing.T) {
		e, cfg, files := testEngine(t)
		seedServer(cfg, "fetch", config.AppFlags{Claude: true, Gemini: true})
		require.NoError(t, e.SyncAllEnabled(cfg))

		existed, err := e.DeleteServer(cfg, "fetch")
		require.NoError(t, err)
		assert.True(t, existed)

		for _, app := range []config.AppType{config.AppClaude, config.AppGemini} {
			doc, err := files.ReadOrEmpty(files.McpLivePath(app))
			require.NoError(t, err)
			assert.NotContains(t, doc.Section(files.McpKey(app)), "fetch")
		}

		reloaded, err := e.store.Load()
		require.NoError(t, err)
		assert.NotContains(t, reloaded.Mcp.Servers, "fetch")
	})
}

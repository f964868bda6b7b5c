package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags are independent", func(t *testing.T) {
		var f AppFlags
		f.Set(AppClaude, true)
		f.Set(AppGemini, true)

		assert.True(t, f.Enabled(AppClaude))
		assert.False(t, f.Enabled(AppCodex))
		assert.True(t, f.Enabled(AppGemini))
		assert.Equal(t, []AppType{AppClaude, AppGemini}, f.EnabledApps())
	})

	t.Run("empty subset is allowed", func(t *testing.T) {
		var f AppFlags
		assert.Empty(t, f.EnabledApps())
	})

	t.Run("set then clear", func(t *testing.T) {
		var f AppFlags
		f.Set(AppCodex, true)
		f.Set(AppCodex, false)
		assert.False(t, f.Enabled(AppCodex))
	})
}

func TestMcpRegistryEnabledFor(t *testing.T) {
	t.Parallel()

	r := NewMcpRegistry()
	r.Servers["zeta"] = &McpServer{Name: "zeta", Command: "z", Apps: AppFlags{Claude: true}}
	r.Servers["alpha"] = &McpServer{Name: "alpha", Command: "a", Apps: AppFlags{Claude: true, Codex: true}}
	r.Servers["beta"] = &McpServer{Name: "beta", Command: "b"}

	assert.Equal(t, []string{"alpha", "zeta"}, r.EnabledFor(AppClaude))
	assert.Equal(t, []string{"alpha"}, r.EnabledFor(AppCodex))
	assert.Empty(t, r.EnabledFor(AppGemini))
	assert.Equal(t, []string{"alpha", "beta", "zeta"}, r.ServerIDs())
}

func TestMcpServerValidate(t *testing.T) {
	t.Parallel()

	srv := &McpServer{Name: "fetch", Command: "npx"}
	require.NoError(t, srv.Validate())

	srv = &McpServer{Name: "fetch"}
	require.Error(t, srv.Validate())
}

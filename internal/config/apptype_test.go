package config

import (
	"testing"

	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppType(t *testing.T) {
	t.Parallel()

	for _, app := range AllApps() {
		parsed, err := ParseAppType(string(app))
		require.NoError(t, err)
		assert.Equal(t, app, parsed)
	}

	_, err := ParseAppType("cursor")
	require.Error(t, err)
	assert.ErrorIs(t, err, errz.ErrInvalidAppType)

	_, err = ParseAppType("")
	require.Error(t, err)
}

func TestAppTypeDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Claude", AppClaude.DisplayName())
	assert.Equal(t, "Codex", AppCodex.DisplayName())
	assert.Equal(t, "Gemini", AppGemini.DisplayName())
}

func TestAllAppsIsClosedSet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []AppType{AppClaude, AppCodex, AppGemini}, AllApps())
}

package config

import (
	"testing"

	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		p := &Provider{ID: "relay", Name: "Relay", Category: "custom"}
		assert.NoError(t, p.Validate())
	})

	t.Run("empty id", func(t *testing.T) {
		p := &Provider{Name: "Relay"}
		err := p.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrEmptyID)
	})

	t.Run("missing name", func(t *testing.T) {
		p := &Provider{ID: "relay"}
		err := p.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrMissingRequiredField)
	})
}

func TestProviderIsOfficial(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Provider{Category: CategoryOfficial}).IsOfficial())
	assert.False(t, (&Provider{Category: "custom"}).IsOfficial())
	assert.False(t, (&Provider{}).IsOfficial())
}

func TestAppConfigCurrentProvider(t *testing.T) {
	t.Parallel()

	ac := NewAppConfig()
	assert.Nil(t, ac.CurrentProvider())

	relay := &Provider{ID: "relay", Name: "Relay"}
	ac.Providers["relay"] = relay
	ac.CurrentProviderID = "relay"
	assert.Same(t, relay, ac.CurrentProvider())
}

func TestAppConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("empty is valid", func(t *testing.T) {
		assert.NoError(t, NewAppConfig().Validate())
	})

	t.Run("key and ID must agree", func(t *testing.T) {
		ac := NewAppConfig()
		ac.Providers["relay"] = &Provider{ID: "other", Name: "Relay"}
		err := ac.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrInvalidValue)
	})

	t.Run("null provider entry", func(t *testing.T) {
		ac := NewAppConfig()
		ac.Providers["relay"] = nil
		err := ac.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrInvalidValue)
	})

	t.Run("dangling current reference", func(t *testing.T) {
		ac := NewAppConfig()
		ac.CurrentProviderID = "ghost"
		err := ac.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrInvalidReference)
	})
}

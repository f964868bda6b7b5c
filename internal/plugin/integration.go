// Package plugin keeps the Claude plugin key file in step with the user's
// integration preference and the active provider. The integration works by
// writing a sentinel API key into ~/.claude/config.json so the plugin defers
// to whatever provider the CLI has been switched to.
package plugin

import (
	"fmt"
	"log/slog"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/livefile"
	"github.com/ccswitch/ccswitch/internal/settings"
)

// KeySentinel is the value written into the plugin key field when the
// integration is on. The plugin treats it as "accept any key".
const KeySentinel = "any"

// Integration mediates between the settings file and the plugin key file.
type Integration struct {
	files  *livefile.Adapter
	prefs  *settings.File
	logger *slog.Logger
}

// New creates an Integration over the given live file adapter and settings.
func New(files *livefile.Adapter, prefs *settings.File) *Integration {
	return &Integration{
		files:  files,
		prefs:  prefs,
		logger: slog.Default().WithGroup("plugin"),
	}
}

// Enabled reports whether the integration preference is on.
func (i *Integration) Enabled() (bool, error) {
	s, err := i.prefs.Load()
	if err != nil {
		return false, err
	}
	return s.EnableClaudePluginIntegration, nil
}

// SetEnabled persists the preference and immediately applies it to the plugin
// key file.
func (i *Integration) SetEnabled(enabled bool) error {
	s, err := i.prefs.Load()
	if err != nil {
		return err
	}
	s.EnableClaudePluginIntegration = enabled
	if err := i.prefs.Save(s); err != nil {
		return err
	}
	return i.SyncOnSettingsToggle(enabled)
}

// SyncOnSettingsToggle applies the preference to the plugin key file without
// touching the settings file: enabling writes the sentinel, disabling removes
// the field. All other content of the key file is left alone.
func (i *Integration) SyncOnSettingsToggle(enabled bool) error {
	path := i.files.PluginConfigPath()
	var value any
	if enabled {
		value = KeySentinel
	}
	if err := i.files.MergeAndWrite(path, map[string]any{livefile.PrimaryAPIKeyField: value}); err != nil {
		return fmt.Errorf("updating plugin key file: %w", err)
	}

	i.logger.Info("plugin integration toggled", "enabled", enabled, "path", path)
	return nil
}

// SyncOnProviderSwitch adjusts the plugin key file after a provider switch.
// It is a no-op when the integration is off or the switch targets another
// application. An official provider clears the field so the plugin falls back
// to its own credentials; any other provider gets the sentinel.
func (i *Integration) SyncOnProviderSwitch(app config.AppType, provider *config.Provider) error {
	if app != config.AppClaude {
		return nil
	}
	enabled, err := i.Enabled()
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	var value any
	if !provider.IsOfficial() {
		value = KeySentinel
	}
	path := i.files.PluginConfigPath()
	if err := i.files.MergeAndWrite(path, map[string]any{livefile.PrimaryAPIKeyField: value}); err != nil {
		return fmt.Errorf("updating plugin key file: %w", err)
	}

	i.logger.Debug("plugin key synced for provider switch",
		"provider", provider.Name, "official", provider.IsOfficial())
	return nil
}

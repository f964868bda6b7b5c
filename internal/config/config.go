// Package config defines the unified configuration model shared across the
// supported client applications, plus its validation rules.
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ccswitch/ccswitch/internal/config/errz"
)

// Version is the current schema version of the unified store document.
const Version = 2

// Config is the root persisted document: one AppConfig per application and
// one MCP registry shared by all of them.
type Config struct {
	Version int                    `json:"version"`
	Apps    map[AppType]*AppConfig `json:"apps"`
	Mcp     McpRegistry            `json:"mcp"`
}

// Default returns an empty unified config with every supported application
// present. Returned by Store.Load when no document exists yet.
func Default() *Config {
	apps := make(map[AppType]*AppConfig, len(AllApps()))
	for _, app := range AllApps() {
		apps[app] = NewAppConfig()
	}
	return &Config{
		Version: Version,
		Apps:    apps,
		Mcp:     NewMcpRegistry(),
	}
}

// FromBytes parses a unified config document from JSON bytes.
func FromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errz.ErrParse, err)
	}
	cfg.normalize()
	return &cfg, nil
}

// Bytes serializes the config with stable, human-readable formatting.
func (c *Config) Bytes() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errz.ErrParse, err)
	}
	return append(data, '\n'), nil
}

// App returns the per-application config, creating an empty one on first use.
func (c *Config) App(app AppType) *AppConfig {
	if c.Apps == nil {
		c.Apps = map[AppType]*AppConfig{}
	}
	ac, ok := c.Apps[app]
	if !ok || ac == nil {
		ac = NewAppConfig()
		c.Apps[app] = ac
	}
	return ac
}

// normalize fills nil maps left behind by partial documents so callers never
// need nil checks.
func (c *Config) normalize() {
	if c.Apps == nil {
		c.Apps = map[AppType]*AppConfig{}
	}
	for app, ac := range c.Apps {
		if ac == nil {
			c.Apps[app] = NewAppConfig()
			continue
		}
		if ac.Providers == nil {
			ac.Providers = map[string]*Provider{}
		}
	}
	if c.Mcp.Servers == nil {
		c.Mcp.Servers = map[string]*McpServer{}
	}
}

// Validate checks the whole document: known app identifiers, per-app provider
// sets and current-provider references, and the MCP registry.
func (c *Config) Validate() error {
	var errs []error

	for app, ac := range c.Apps {
		if err := app.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if ac == nil {
			continue
		}
		if err := ac.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("app '%s': %w", app, err))
		}
	}

	if err := c.Mcp.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", errz.ErrValidation, errors.Join(errs...))
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ccswitch/ccswitch/internal/config/errz"
)

// AppFlags records, per application, whether an MCP server is enabled.
// The flags are independent; any subset of applications may be enabled.
type AppFlags struct {
	Claude bool `json:"claude"`
	Codex  bool `json:"codex"`
	Gemini bool `json:"gemini"`
}

// Enabled reports whether the flag for the given application is set.
func (f AppFlags) Enabled(app AppType) bool {
	switch app {
	case AppClaude:
		return f.Claude
	case AppCodex:
		return f.Codex
	case AppGemini:
		return f.Gemini
	default:
		return false
	}
}

// Set flips the flag for the given application.
func (f *AppFlags) Set(app AppType, enabled bool) {
	switch app {
	case AppClaude:
		f.Claude = enabled
	case AppCodex:
		f.Codex = enabled
	case AppGemini:
		f.Gemini = enabled
	}
}

// EnabledApps returns the applications whose flag is set, in display order.
func (f AppFlags) EnabledApps() []AppType {
	var apps []AppType
	for _, app := range AllApps() {
		if f.Enabled(app) {
			apps = append(apps, app)
		}
	}
	return apps
}

// McpServer describes one MCP server entry in the unified store. The launch
// specification (command, args, env) is opaque to the sync engine.
type McpServer struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Apps    AppFlags          `json:"apps"`
	Tags    []string          `json:"tags,omitempty"`
}

// Validate checks the server entry.
func (s *McpServer) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("%w: MCP server name", errz.ErrMissingRequiredField))
	}
	if s.Command == "" {
		errs = append(errs, fmt.Errorf("%w: MCP server '%s' has no command", errz.ErrMissingRequiredField, s.Name))
	}
	return errors.Join(errs...)
}

// McpRegistry is the cross-application registry of MCP servers, keyed by
// globally unique server ID.
type McpRegistry struct {
	Servers map[string]*McpServer `json:"servers"`
}

// NewMcpRegistry returns an empty registry.
func NewMcpRegistry() McpRegistry {
	return McpRegistry{Servers: map[string]*McpServer{}}
}

// ServerIDs returns all server IDs sorted lexically.
func (r McpRegistry) ServerIDs() []string {
	ids := make([]string, 0, len(r.Servers))
	for id := range r.Servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnabledFor returns the IDs of servers enabled for the given application,
// sorted lexically.
func (r McpRegistry) EnabledFor(app AppType) []string {
	var ids []string
	for id, srv := range r.Servers {
		if srv != nil && srv.Apps.Enabled(app) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Validate checks every registry entry.
func (r McpRegistry) Validate() error {
	var errs []error
	for id, srv := range r.Servers {
		if id == "" {
			errs = append(errs, fmt.Errorf("%w: MCP server ID", errz.ErrEmptyID))
			continue
		}
		if srv == nil {
			errs = append(errs, fmt.Errorf("%w: MCP server '%s' is null", errz.ErrInvalidValue, id))
			continue
		}
		if err := srv.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

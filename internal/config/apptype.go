package config

import (
	"fmt"

	"github.com/ccswitch/ccswitch/internal/config/errz"
)

// AppType identifies one of the client applications managed by ccswitch.
// The set is closed; per-application behavior (live file path, MCP section
// format, plugin integration applicability) switches exhaustively on it.
type AppType string

const (
	AppClaude AppType = "claude"
	AppCodex  AppType = "codex"
	AppGemini AppType = "gemini"
)

// AllApps returns every supported application, in display order.
func AllApps() []AppType {
	return []AppType{AppClaude, AppCodex, AppGemini}
}

// ParseAppType converts a user-supplied string into an AppType.
func ParseAppType(s string) (AppType, error) {
	switch AppType(s) {
	case AppClaude, AppCodex, AppGemini:
		return AppType(s), nil
	default:
		return "", fmt.Errorf("%w: '%s' (expected claude, codex, or gemini)", errz.ErrInvalidAppType, s)
	}
}

// Validate checks the AppType is one of the supported applications.
func (a AppType) Validate() error {
	_, err := ParseAppType(string(a))
	return err
}

func (a AppType) String() string {
	return string(a)
}

// DisplayName returns the capitalized name used in CLI output.
func (a AppType) DisplayName() string {
	switch a {
	case AppClaude:
		return "Claude"
	case AppCodex:
		return "Codex"
	case AppGemini:
		return "Gemini"
	default:
		return string(a)
	}
}

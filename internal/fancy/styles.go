package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Common styles that can be used across the application
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	ComponentStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	ProviderStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	ServerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	AppStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	CurrentStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// ProviderText styles a provider id or name
func ProviderText(text string) string {
	return ProviderStyle.Render(text)
}

// ServerText styles an MCP server id
func ServerText(text string) string {
	return ServerStyle.Render(text)
}

// AppText styles an application name
func AppText(text string) string {
	return AppStyle.Render(text)
}

// TagText styles a server tag
func TagText(text string) string {
	return TagStyle.Render(text)
}

// Status and summary styling functions

// ValidText styles valid status text (green)
func ValidText(text string) string {
	return AppStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// SummaryText styles summary information (dark gray)
func SummaryText(text string) string {
	return BranchStyle.Render(text)
}

// CountText styles count numbers (cyan)
func CountText(text string) string {
	return ComponentStyle.Render(text)
}

// Package color provides the shared terminal color palette for gd32test
// console output. Styles adapt to light and dark backgrounds and degrade
// gracefully on terminals without color support.
package color

import "github.com/charmbracelet/lipgloss"

var (
	success = lipgloss.AdaptiveColor{Light: "#05A167", Dark: "#05D176"}
	failure = lipgloss.AdaptiveColor{Light: "#E06A56", Dark: "#F97171"}
	warning = lipgloss.AdaptiveColor{Light: "#E0A956", Dark: "#F9C171"}
	info    = lipgloss.AdaptiveColor{Light: "#5A9FE0", Dark: "#71B7F9"}
	subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(failure).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(info)
	SubtleStyle  = lipgloss.NewStyle().Foreground(subtle)
)

// Pass renders a board/test status line fragment for a successful build.
func Pass(s string) string { return SuccessStyle.Render(s) }

// Fail renders a fragment for a failed build.
func Fail(s string) string { return ErrorStyle.Render(s) }

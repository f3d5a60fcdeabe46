package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/omarchy-fork/omacustom/pkg/session"
	"github.com/pterm/pterm"
)

var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}
	colorError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}

	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	PathStyle    = lipgloss.NewStyle().Italic(true)
)

// StateStyle returns the pterm badge style for a session state
func StateStyle(state session.State) *pterm.Style {
	switch state {
	case session.Applied:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case session.AlreadyPresent:
		return pterm.NewStyle(pterm.FgGreen)
	case session.Skipped:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case session.Failed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Symbol returns the one-character marker for a state
func Symbol(state session.State) string {
	switch state {
	case session.Applied, session.AlreadyPresent:
		return "✓"
	case session.Skipped:
		return "-"
	case session.Failed:
		return "!"
	default:
		return " "
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

// Palette with light and dark terminal variants.
var (
	colorOK      = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#22c55e"}
	colorFailed  = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#ef4444"}
	colorWorking = lipgloss.AdaptiveColor{Light: "#a16207", Dark: "#eab308"}
	colorHeading = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#3b82f6"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#0e7490", Dark: "#06b6d4"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#6b7280"}
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	titleStyle   = fg(colorAccent).Bold(true)
	sectionStyle = fg(colorHeading).Bold(true).MarginTop(1)
	footerStyle  = fg(colorMuted).MarginTop(1)

	readyStyle   = fg(colorOK)
	failedStyle  = fg(colorFailed)
	warningStyle = fg(colorWorking)
	activeStyle  = fg(colorWorking).Bold(true)
	dimStyle     = fg(colorMuted)

	progressBarFull     = fg(colorAccent)
	progressBarTeardown = fg(colorFailed)
	progressBarEmpty    = fg(colorMuted)
)

// Row markers, all four cells wide so the phase names line up.
const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
	spinner   = "[..]"
	pending   = "[  ]"
)

var spinnerFrames = []string{"[⠋ ]", "[⠙ ]", "[⠹ ]", "[⠸ ]", "[⠼ ]", "[⠴ ]", "[⠦ ]", "[⠧ ]", "[⠇ ]", "[⠏ ]"}

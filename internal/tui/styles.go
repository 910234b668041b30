package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan — persona/header accent
	colorAccent  = lipgloss.Color("#FFD700") // Gold — cost
	colorSuccess = lipgloss.Color("#00E676") // Green — completed
	colorDanger  = lipgloss.Color("#FF5252") // Red — errors/failures
	colorMuted   = lipgloss.Color("#636363") // Gray — de-emphasized
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white — primary text
)

// Status icons.
const (
	iconDone    = "✓"
	iconFailed  = "✗"
	iconTool    = "·"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	styleTask = lipgloss.NewStyle().Foreground(colorWhite)

	styleUsage = lipgloss.NewStyle().Foreground(colorMuted)

	styleCost = lipgloss.NewStyle().Foreground(colorAccent)

	styleTool = lipgloss.NewStyle().Foreground(colorMuted)

	styleToolName = lipgloss.NewStyle().Foreground(colorWhite)

	styleOutput = lipgloss.NewStyle().Foreground(colorWhite)

	styleError = lipgloss.NewStyle().Foreground(colorDanger)

	styleDone = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)

	styleFooter = lipgloss.NewStyle().Foreground(colorMuted)
)

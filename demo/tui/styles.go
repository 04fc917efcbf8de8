package tui

import "github.com/charmbracelet/lipgloss"

// Palette: arXiv red for branding, muted slate for secondary text.
const (
	colorAccent  = "#B31B1B"
	colorStage   = "#2E86AB"
	colorDone    = "#1B9E4B"
	colorFailed  = "#D64545"
	colorWarning = "#C98A1B"
	colorMuted   = "#6B7280"
	colorPaper   = "#F5F0E8"
)

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)).
		MarginTop(1).
		MarginBottom(1)

	StageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorStage))

	DoneStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPaper)).
		Background(lipgloss.Color(colorDone)).
		Padding(0, 1)

	FailStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorFailed))

	WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorWarning))

	MutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted))

	ArtifactBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorAccent)).
		Padding(1, 2)
)

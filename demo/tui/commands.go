package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// startRun creates a command that launches a pipeline run
func startRun(client *PipelineClient, paperID, aspect string) tea.Cmd {
	return func() tea.Msg {
		runID, err := client.StartRun(paperID, aspect)
		return RunStartedMsg{RunID: runID, Err: err}
	}
}

// pollRun creates a command that fetches the state of a run
func pollRun(client *PipelineClient, runID string) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetRun(runID)
		return StatusUpdateMsg{Status: status, Err: err}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case RunStartedMsg:
		return m.handleRunStarted(msg)
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "a", "A":
		if m.State == StateIdle {
			if m.Aspect == "landscape" {
				m.Aspect = "portrait"
			} else {
				m.Aspect = "landscape"
			}
		}
	case "d", "D":
		if m.State == StateIdle || m.State == StateComplete || m.State == StateError {
			m.State = StateStarting
			m.Status = nil
			m.Err = nil
			return m, startRun(m.Client, m.PaperID, m.Aspect)
		}
	}
	return m, nil
}

// handleRunStarted processes the run creation response
func (m Model) handleRunStarted(msg RunStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.RunID = msg.RunID
	m.State = StateRunning
	return m, pollRun(m.Client, m.RunID)
}

// handleStatusUpdate processes polled run state
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Transient polling errors just wait for the next tick
		return m, nil
	}
	m.Status = msg.Status

	switch msg.Status.Stage {
	case "done":
		m.State = StateComplete
	case "failed":
		m.State = StateError
		m.Err = errFromStatus(msg.Status)
	default:
		m.State = StateRunning
	}
	return m, nil
}

// handleTick polls the active run and schedules the next tick
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.State == StateRunning && m.RunID != "" {
		return m, tea.Batch(pollRun(m.Client, m.RunID), tickCmd())
	}
	return m, tickCmd()
}

type statusError struct{ msg string }

func (e statusError) Error() string { return e.msg }

func errFromStatus(s *RunStatus) error {
	if s.Error != "" {
		return statusError{msg: s.Error}
	}
	return statusError{msg: "run failed"}
}

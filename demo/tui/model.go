package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the demo state machine
type State string

const (
	StateIdle     State = "idle"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateComplete State = "complete"
	StateError    State = "error"
)

// Model represents the TUI client state (thin client)
type Model struct {
	Client  *PipelineClient
	PaperID string
	Aspect  string

	// Local UI state (synced from the API)
	State  State
	RunID  string
	Status *RunStatus
	Err    error
}

// NewModel creates a new TUI model
func NewModel(apiURL, paperID string) Model {
	return Model{
		Client:  NewPipelineClient(apiURL),
		PaperID: paperID,
		Aspect:  "landscape",
		State:   StateIdle,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateIdle:
		return StageStyle.Render("👋 Ready!") + "\n\n" +
			MutedStyle.Render(fmt.Sprintf("Paper: %s | Aspect: %s", m.PaperID, m.Aspect))
	case StateStarting:
		return StageStyle.Render("🚀 Starting run...")
	case StateRunning:
		stage := "working"
		if m.Status != nil {
			stage = m.Status.Stage
		}
		return StageStyle.Render(fmt.Sprintf("⏳ %s (run %s)", stageText(stage), m.RunID))
	case StateComplete:
		return DoneStyle.Render("✅ COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return FailStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

func stageText(stage string) string {
	switch stage {
	case "fetching":
		return "Fetching paper..."
	case "scripting":
		return "Writing script..."
	case "rendering":
		return "Rendering scenes..."
	case "composing":
		return "Composing timeline..."
	case "mixing":
		return "Mixing audio..."
	case "publishing":
		return "Publishing..."
	default:
		return stage
	}
}

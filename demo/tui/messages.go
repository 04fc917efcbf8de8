package tui

import "time"

// Messages for the tea program (polling-based)

// RunStartedMsg is sent when the API accepts a run request
type RunStartedMsg struct {
	RunID string
	Err   error
}

// StatusUpdateMsg is sent when we receive run state from the API
type StatusUpdateMsg struct {
	Status *RunStatus
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

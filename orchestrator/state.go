package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vidxiv/types"
)

// RunState is the externally visible snapshot of one pipeline run. It
// backs both the status API and the on-disk run records.
type RunState struct {
	ID           string           `json:"id"`
	PaperID      string           `json:"paper_id"`
	Aspect       types.AspectMode `json:"aspect"`
	Stage        Stage            `json:"stage"`
	SceneIndex   int              `json:"scene_index,omitempty"`
	SceneCount   int              `json:"scene_count,omitempty"`
	Warnings     []types.Warning  `json:"warnings,omitempty"`
	ArtifactPath string           `json:"artifact_path,omitempty"`
	DurationSec  float64          `json:"duration_sec,omitempty"`
	Error        string           `json:"error,omitempty"`
	StartedAt    time.Time        `json:"started_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// StateStore tracks run states in memory and mirrors them to JSON
// files so finished runs survive restarts.
type StateStore struct {
	mu   sync.RWMutex
	dir  string
	runs map[string]*RunState
}

// NewStateStore creates a store persisting under dir/runs.
func NewStateStore(dir string) (*StateStore, error) {
	runsDir := filepath.Join(dir, "runs")
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runs dir: %w", err)
	}
	return &StateStore{dir: runsDir, runs: make(map[string]*RunState)}, nil
}

// Put stores a snapshot and persists it.
func (s *StateStore) Put(state RunState) {
	state.UpdatedAt = time.Now()

	s.mu.Lock()
	copied := state
	s.runs[state.ID] = &copied
	s.mu.Unlock()

	// Persistence is best-effort; the in-memory copy stays authoritative
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(s.dir, state.ID+".json"), b, 0644)
}

// Get returns a run snapshot, falling back to the on-disk record for
// runs from before a restart.
func (s *StateStore) Get(id string) (RunState, bool) {
	s.mu.RLock()
	state, ok := s.runs[id]
	s.mu.RUnlock()
	if ok {
		return *state, true
	}

	b, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		return RunState{}, false
	}
	var loaded RunState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return RunState{}, false
	}
	return loaded, true
}

// List returns all in-memory run snapshots.
func (s *StateStore) List() []RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RunState, 0, len(s.runs))
	for _, state := range s.runs {
		out = append(out, *state)
	}
	return out
}

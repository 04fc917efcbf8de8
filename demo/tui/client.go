package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PipelineClient is a thin HTTP client for the pipeline API
type PipelineClient struct {
	baseURL string
	client  *http.Client
}

// NewPipelineClient creates a new pipeline client
func NewPipelineClient(baseURL string) *PipelineClient {
	return &PipelineClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// RunStatus mirrors the run state JSON served by the API.
type RunStatus struct {
	ID           string       `json:"id"`
	PaperID      string       `json:"paper_id"`
	Aspect       string       `json:"aspect"`
	Stage        string       `json:"stage"`
	SceneCount   int          `json:"scene_count,omitempty"`
	Warnings     []RunWarning `json:"warnings,omitempty"`
	ArtifactPath string       `json:"artifact_path,omitempty"`
	DurationSec  float64      `json:"duration_sec,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// RunWarning is a recoverable issue reported by a run.
type RunWarning struct {
	Kind       string `json:"kind"`
	SceneIndex int    `json:"scene_index"`
	Message    string `json:"message"`
}

// StartRun launches a pipeline run and returns its ID
func (c *PipelineClient) StartRun(paperID, aspect string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"paper_id": paperID,
		"aspect":   aspect,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.client.Post(c.baseURL+"/api/runs", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		RunID string `json:"run_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return parsed.RunID, nil
}

// GetRun fetches the current state of a run
func (c *PipelineClient) GetRun(runID string) (*RunStatus, error) {
	resp, err := c.client.Get(c.baseURL + "/api/runs/" + runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}

	var status RunStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &status, nil
}

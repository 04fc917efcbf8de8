package orchestrator

// Stage identifies where a pipeline run currently is. Stages always
// advance in order; Failed can follow any of them.
type Stage string

const (
	StageFetching   Stage = "fetching"
	StageScripting  Stage = "scripting"
	StageRendering  Stage = "rendering"
	StageComposing  Stage = "composing"
	StageMixing     Stage = "mixing"
	StagePublishing Stage = "publishing"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// Event is one progress notification from a running pipeline.
// SceneIndex (1-based) and SceneCount are set during rendering, zero
// otherwise.
type Event struct {
	RunID      string `json:"run_id"`
	Stage      Stage  `json:"stage"`
	SceneIndex int    `json:"scene_index,omitempty"`
	SceneCount int    `json:"scene_count,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Progress receives pipeline events. Callbacks run on the pipeline
// goroutine and must return quickly.
type Progress func(Event)

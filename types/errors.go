package types

import "fmt"

// FetchError indicates the paper could not be retrieved or parsed.
type FetchError struct {
	PaperID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching paper %s: %v", e.PaperID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ScriptGenError indicates script generation failed or produced an
// unusable scene list.
type ScriptGenError struct {
	PaperID string
	Err     error
}

func (e *ScriptGenError) Error() string {
	return fmt.Sprintf("generating script for %s: %v", e.PaperID, e.Err)
}

func (e *ScriptGenError) Unwrap() error { return e.Err }

// SynthesisError indicates narration synthesis failed for one scene
// after exhausting retries. Any such failure aborts the whole run.
type SynthesisError struct {
	SceneIndex int
	Err        error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesizing narration for scene %d: %v", e.SceneIndex, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// CompositionError indicates rendering, concatenation, or final muxing
// failed.
type CompositionError struct {
	Stage string
	Err   error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition failed at %s: %v", e.Stage, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Paper holds a fetched paper with its text and any figures extracted
// from the PDF, in source order.
type Paper struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Abstract  string    `json:"abstract"`
	FullText  string    `json:"full_text"`
	Figures   []Figure  `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Figure is one candidate figure image pulled out of the paper PDF.
type Figure struct {
	Bytes []byte
}

// VisualKind tags the visual reference variant of a scene.
type VisualKind string

const (
	// VisualNone means the scene has no requested figure; a generated
	// placeholder card backs it.
	VisualNone VisualKind = "none"

	// VisualFigure points at an index into the paper's figure list.
	VisualFigure VisualKind = "figure"

	// VisualGenerated explicitly requests a generated placeholder card.
	VisualGenerated VisualKind = "generated"
)

// VisualRef is the tagged union a scene uses to reference its visual.
// FigureIndex is meaningful only when Kind == VisualFigure.
type VisualRef struct {
	Kind        VisualKind `json:"kind"`
	FigureIndex int        `json:"figure_index,omitempty"`
}

// NoVisual returns the absent-reference variant.
func NoVisual() VisualRef { return VisualRef{Kind: VisualNone} }

// FigureRef returns a reference to the i-th paper figure.
func FigureRef(i int) VisualRef { return VisualRef{Kind: VisualFigure, FigureIndex: i} }

// GeneratedRef returns the generated-placeholder variant.
func GeneratedRef() VisualRef { return VisualRef{Kind: VisualGenerated} }

// Scene is one narration+visual unit of the script. Scenes are immutable
// once the script generator has produced them.
type Scene struct {
	Narration string    `json:"narration"`
	Title     string    `json:"title,omitempty"`
	Visual    VisualRef `json:"visual"`
}

// Script is the full ordered scene list for one video. Order is display
// and narration order.
type Script struct {
	PaperID string  `json:"paper_id"`
	Title   string  `json:"title"`
	Scenes  []Scene `json:"scenes"`
}

// NarrationClip is the synthesized narration audio for one scene.
// DurationSec is always > 0 for a successfully synthesized clip and
// drives the visual duration of the rendered scene.
type NarrationClip struct {
	Path        string  `json:"path"`
	DurationSec float64 `json:"duration_sec"`
}

// SceneClip is one rendered scene: frames plus embedded narration track,
// duration fixed at creation. It is consumed exactly once by the
// timeline composer.
type SceneClip struct {
	Index       int     `json:"index"`
	Path        string  `json:"path"`
	DurationSec float64 `json:"duration_sec"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

// Timeline is the ordered concatenation of all scene clips before music
// is mixed in. DurationSec equals the sum of the clip durations.
type Timeline struct {
	Path        string  `json:"path"`
	DurationSec float64 `json:"duration_sec"`
}

// AspectMode selects the output frame shape.
type AspectMode string

const (
	AspectLandscape AspectMode = "landscape" // 16:9
	AspectPortrait  AspectMode = "portrait"  // 9:16
)

// RenderConfig carries the per-run rendering options. It is supplied
// once per pipeline run and never mutated during the run.
type RenderConfig struct {
	Aspect AspectMode `json:"aspect"`
	Music  []byte     `json:"-"`
}

// WarningKind classifies recoverable issues recorded during a run.
type WarningKind string

const (
	WarningAsset WarningKind = "asset"
	WarningMusic WarningKind = "music"
)

// Warning is a non-fatal issue surfaced alongside the finished artifact.
// SceneIndex is -1 when the warning is not tied to a scene.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	SceneIndex int         `json:"scene_index"`
	Message    string      `json:"message"`
}

// VideoArtifact is the final muxed video handed to the caller, together
// with any recoverable warnings gathered along the way.
type VideoArtifact struct {
	Path        string    `json:"path"`
	DurationSec float64   `json:"duration_sec"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

// GenerateKey derives a stable short key from the given parts, used to
// namespace registry entries for identical runs.
func GenerateKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

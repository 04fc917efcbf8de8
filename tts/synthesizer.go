package tts

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"vidxiv/config"
	"vidxiv/types"
	"vidxiv/video"
)

// Synthesizer abstracts a text->speech backend. Implementations write
// the synthesized audio to outPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outPath string) error
}

// HTTPSynthesizer talks to a speech service over its HTTP API
// (GET /api/tts?text=...&speaker_id=... returning WAV audio).
type HTTPSynthesizer struct {
	baseURL    string
	voice      string
	httpClient *http.Client
}

// NewHTTPSynthesizer creates a synthesizer against the given service.
func NewHTTPSynthesizer(baseURL, voice string) *HTTPSynthesizer {
	return &HTTPSynthesizer{
		baseURL:    baseURL,
		voice:      voice,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text, outPath string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("narration text is empty")
	}

	q := url.Values{}
	q.Set("text", text)
	if s.voice != "" {
		q.Set("speaker_id", s.voice)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/api/tts?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts service returned status %d", resp.StatusCode)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(outPath)
		return err
	}
	return nil
}

// Narrator wraps a Synthesizer into the per-scene narration stage,
// retrying failed synthesis and measuring the finished clip.
type Narrator struct {
	synth Synthesizer
	probe func(path string) (float64, error)
}

// NewNarrator creates a Narrator over the given backend.
func NewNarrator(s Synthesizer) *Narrator {
	return NewNarratorWithProbe(s, video.ProbeDuration)
}

// NewNarratorWithProbe creates a Narrator with a custom duration probe.
func NewNarratorWithProbe(s Synthesizer, probe func(path string) (float64, error)) *Narrator {
	return &Narrator{synth: s, probe: probe}
}

// Narrate synthesizes one scene's narration with retries. Exhausted
// retries surface as a SynthesisError, which aborts the whole run.
func (n *Narrator) Narrate(ctx context.Context, sceneIndex int, text, outPath string) (types.NarrationClip, error) {
	if strings.TrimSpace(text) == "" {
		return types.NarrationClip{}, &types.SynthesisError{SceneIndex: sceneIndex, Err: fmt.Errorf("narration text is empty")}
	}

	var lastErr error
	for attempt := 0; attempt <= config.SynthesisRetries; attempt++ {
		if attempt > 0 {
			log.Printf("  Retrying narration for scene %d (attempt %d/%d)", sceneIndex+1, attempt+1, config.SynthesisRetries+1)
		}
		if err := ctx.Err(); err != nil {
			return types.NarrationClip{}, &types.SynthesisError{SceneIndex: sceneIndex, Err: err}
		}

		if err := n.synth.Synthesize(ctx, text, outPath); err != nil {
			lastErr = err
			continue
		}

		duration, err := n.probe(outPath)
		if err != nil {
			lastErr = err
			os.Remove(outPath)
			continue
		}
		return types.NarrationClip{Path: outPath, DurationSec: duration}, nil
	}
	return types.NarrationClip{}, &types.SynthesisError{SceneIndex: sceneIndex, Err: lastErr}
}

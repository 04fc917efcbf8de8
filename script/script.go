package script

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"vidxiv/config"
	"vidxiv/types"
)

// Writer binds a provider and scene count into a reusable script stage.
type Writer struct {
	provider   Provider
	sceneCount int
}

// NewWriter creates a Writer. provider may be nil for template-only
// scripting.
func NewWriter(provider Provider, sceneCount int) *Writer {
	return &Writer{provider: provider, sceneCount: sceneCount}
}

func (w *Writer) Write(ctx context.Context, p *types.Paper) (*types.Script, error) {
	return Generate(ctx, w.provider, p, w.sceneCount)
}

// Generate produces the scene script for a paper. A nil provider or a
// provider failure falls back to template scripting from the abstract,
// so generation only fails when no usable narration can be built at all.
func Generate(ctx context.Context, provider Provider, p *types.Paper, sceneCount int) (*types.Script, error) {
	if sceneCount <= 0 {
		sceneCount = config.DefaultSceneCount
	}

	if provider != nil {
		raw, err := provider.GenerateScenes(ctx, p, sceneCount)
		if err != nil {
			log.Printf("⚠️  Script generation via %s failed, falling back to template: %v", provider.ModelName(), err)
		} else if scenes := Parse(raw); len(scenes) > 0 {
			return &types.Script{PaperID: p.ID, Title: videoTitle(p), Scenes: scenes}, nil
		} else {
			log.Printf("⚠️  Generated script had no parseable scenes, falling back to template")
		}
	}

	scenes := templateScenes(p, sceneCount)
	if len(scenes) == 0 {
		return nil, &types.ScriptGenError{PaperID: p.ID, Err: errors.New("paper has no usable text")}
	}
	return &types.Script{PaperID: p.ID, Title: videoTitle(p), Scenes: scenes}, nil
}

// templateScenes builds a plain walkthrough script from the abstract:
// an opening scene, one scene per abstract chunk, and a closing scene.
func templateScenes(p *types.Paper, sceneCount int) []types.Scene {
	sentences := splitSentences(p.Abstract)
	if len(sentences) == 0 {
		return nil
	}

	bodyCount := sceneCount - 2
	if bodyCount < 1 {
		bodyCount = 1
	}
	chunks := chunkSentences(sentences, bodyCount)

	scenes := []types.Scene{{
		Title:     "Introduction",
		Narration: fmt.Sprintf("Today we're looking at the paper %s. Let's walk through what it's about.", p.Title),
		Visual:    types.GeneratedRef(),
	}}
	for i, chunk := range chunks {
		visual := types.NoVisual()
		if len(p.Figures) > 0 {
			visual = types.FigureRef(i % len(p.Figures))
		}
		scenes = append(scenes, types.Scene{
			Title:     fmt.Sprintf("Key Point %d", i+1),
			Narration: chunk,
			Visual:    visual,
		})
	}
	scenes = append(scenes, types.Scene{
		Title:     "Wrapping Up",
		Narration: "That's the core idea of this paper. Check out the full text for the details.",
		Visual:    types.GeneratedRef(),
	})
	return scenes
}

func videoTitle(p *types.Paper) string {
	runes := []rune(p.Title)
	if len(runes) > config.MaxTitleLength {
		return string(runes[:config.MaxTitleLength-3]) + "..."
	}
	return p.Title
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		s = strings.TrimSpace(s)
		if len(s) > 20 {
			out = append(out, s+".")
		}
	}
	return out
}

func chunkSentences(sentences []string, n int) []string {
	if n > len(sentences) {
		n = len(sentences)
	}
	per := len(sentences) / n
	if per < 1 {
		per = 1
	}
	var chunks []string
	for i := 0; i < n; i++ {
		start := i * per
		end := start + per
		if i == n-1 {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[start:end], " "))
	}
	return chunks
}

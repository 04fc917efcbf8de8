package script

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"vidxiv/types"
)

// fakeProvider returns a canned response or error.
type fakeProvider struct {
	raw   string
	err   error
	calls int
}

func (f *fakeProvider) GenerateScenes(ctx context.Context, p *types.Paper, sceneCount int) (string, error) {
	f.calls++
	return f.raw, f.err
}

func (f *fakeProvider) ModelName() string { return "fake-model" }

func testPaper() *types.Paper {
	return &types.Paper{
		ID:    "1706.03762",
		Title: "Attention Is All You Need",
		Abstract: "The dominant sequence transduction models are based on complex recurrent networks. " +
			"We propose a new simple network architecture based solely on attention mechanisms. " +
			"Experiments on two machine translation tasks show these models to be superior in quality. " +
			"Our model achieves a new state of the art on the WMT 2014 English-to-German task.",
	}
}

func TestGenerateUsesProviderScenes(t *testing.T) {
	provider := &fakeProvider{raw: `Scene 1:
Title: Hook
Text: What if attention was all you needed?
Figure Hint: none

Scene 2:
Title: The Transformer
Text: The paper replaces recurrence with self-attention.
Figure Hint: Figure 1
`}

	script, err := Generate(context.Background(), provider, testPaper(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, expected 1", provider.calls)
	}
	if len(script.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(script.Scenes))
	}
	if script.PaperID != "1706.03762" {
		t.Errorf("paper ID = %q", script.PaperID)
	}
	if script.Scenes[1].Visual != types.FigureRef(0) {
		t.Errorf("scene 2 visual = %+v", script.Scenes[1].Visual)
	}
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}

	script, err := Generate(context.Background(), provider, testPaper(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTemplateShape(t, script)
}

func TestGenerateFallsBackOnUnparseableOutput(t *testing.T) {
	provider := &fakeProvider{raw: "I'm sorry, I can't format that as scenes."}

	script, err := Generate(context.Background(), provider, testPaper(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTemplateShape(t, script)
}

func TestGenerateWithoutProvider(t *testing.T) {
	script, err := Generate(context.Background(), nil, testPaper(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTemplateShape(t, script)
}

func TestGenerateFailsOnEmptyPaper(t *testing.T) {
	p := &types.Paper{ID: "2401.00001", Title: "Untitled"}

	_, err := Generate(context.Background(), nil, p, 5)
	if err == nil {
		t.Fatal("expected error for paper with no usable text")
	}
	var scriptErr *types.ScriptGenError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected ScriptGenError, got %T: %v", err, err)
	}
	if scriptErr.PaperID != "2401.00001" {
		t.Errorf("error paper ID = %q", scriptErr.PaperID)
	}
}

func TestTemplateScenesCycleFigures(t *testing.T) {
	p := testPaper()
	p.Figures = []types.Figure{{Bytes: []byte{1}}, {Bytes: []byte{2}}}

	scenes := templateScenes(p, 6)
	var figureRefs []int
	for _, s := range scenes {
		if s.Visual.Kind == types.VisualFigure {
			figureRefs = append(figureRefs, s.Visual.FigureIndex)
		}
	}
	if len(figureRefs) == 0 {
		t.Fatal("expected body scenes to reference figures")
	}
	for _, idx := range figureRefs {
		if idx < 0 || idx >= len(p.Figures) {
			t.Errorf("figure index %d out of range", idx)
		}
	}
}

func TestVideoTitleTruncation(t *testing.T) {
	p := testPaper()
	p.Title = strings.Repeat("Long Title ", 30)

	title := videoTitle(p)
	if n := len([]rune(title)); n > 100 {
		t.Errorf("title length %d exceeds limit", n)
	}
	if !strings.HasSuffix(title, "...") {
		t.Errorf("truncated title %q missing ellipsis", title)
	}
}

func TestVideoTitleTruncationKeepsRunesIntact(t *testing.T) {
	p := testPaper()
	p.Title = strings.Repeat("Schrödinger Équations ", 10)

	title := videoTitle(p)
	if !utf8.ValidString(title) {
		t.Fatalf("truncated title is not valid UTF-8: %q", title)
	}
	if n := utf8.RuneCountInString(title); n > 100 {
		t.Errorf("title rune count %d exceeds limit", n)
	}
	if !strings.HasSuffix(title, "...") {
		t.Errorf("truncated title %q missing ellipsis", title)
	}
}

// assertTemplateShape checks the opening/body/closing structure of a
// template-generated script.
func assertTemplateShape(t *testing.T, script *types.Script) {
	t.Helper()
	if len(script.Scenes) < 3 {
		t.Fatalf("expected at least 3 template scenes, got %d", len(script.Scenes))
	}
	first := script.Scenes[0]
	last := script.Scenes[len(script.Scenes)-1]
	if first.Visual.Kind != types.VisualGenerated {
		t.Errorf("opening scene visual = %q", first.Visual.Kind)
	}
	if last.Visual.Kind != types.VisualGenerated {
		t.Errorf("closing scene visual = %q", last.Visual.Kind)
	}
	if !strings.Contains(first.Narration, "Attention Is All You Need") {
		t.Errorf("opening narration %q does not mention the paper", first.Narration)
	}
	for i, s := range script.Scenes {
		if s.Narration == "" {
			t.Errorf("scene %d has empty narration", i)
		}
	}
}

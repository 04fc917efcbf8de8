package script

import (
	"testing"

	"vidxiv/types"
)

func TestParseMultiSceneScript(t *testing.T) {
	raw := `Scene 1:
Title: The Big Idea
Text: This paper introduces a new attention mechanism.
Figure Hint: none

Scene 2:
Title: Architecture
Text: The model stacks encoder and decoder layers.
Figure Hint: Figure 1

Scene 3:
Title: Results
Text: The approach beats prior baselines on translation.
Figure Hint: a chart of BLEU scores
`
	scenes := Parse(raw)
	if len(scenes) != 3 {
		t.Fatalf("expected 3 scenes, got %d", len(scenes))
	}

	if scenes[0].Title != "The Big Idea" {
		t.Errorf("scene 1 title = %q", scenes[0].Title)
	}
	if scenes[0].Narration != "This paper introduces a new attention mechanism." {
		t.Errorf("scene 1 narration = %q", scenes[0].Narration)
	}
	if scenes[0].Visual.Kind != types.VisualNone {
		t.Errorf("scene 1 visual kind = %q, expected none", scenes[0].Visual.Kind)
	}

	if scenes[1].Visual.Kind != types.VisualFigure || scenes[1].Visual.FigureIndex != 0 {
		t.Errorf("scene 2 visual = %+v, expected figure index 0", scenes[1].Visual)
	}
	if scenes[2].Visual.Kind != types.VisualFigure || scenes[2].Visual.FigureIndex != 0 {
		t.Errorf("scene 3 visual = %+v, expected keyword fallback to figure 0", scenes[2].Visual)
	}
}

func TestParseWrappedNarration(t *testing.T) {
	raw := `Scene 1:
Title: Overview
Text: The first line of the narration
continues onto a second line here.
Figure Hint: none
`
	scenes := Parse(raw)
	if len(scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(scenes))
	}
	want := "The first line of the narration continues onto a second line here."
	if scenes[0].Narration != want {
		t.Errorf("narration = %q, want %q", scenes[0].Narration, want)
	}
}

func TestParseDropsEmptyNarration(t *testing.T) {
	raw := `Scene 1:
Title: Empty
Text:
Figure Hint: none

Scene 2:
Title: Kept
Text: Only this scene has narration.
Figure Hint: none
`
	scenes := Parse(raw)
	if len(scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(scenes))
	}
	if scenes[0].Title != "Kept" {
		t.Errorf("kept scene title = %q", scenes[0].Title)
	}
}

func TestParseUnstructuredText(t *testing.T) {
	if scenes := Parse("just some prose with no scene markers at all"); len(scenes) != 0 {
		t.Fatalf("expected no scenes, got %d", len(scenes))
	}
	if scenes := Parse(""); len(scenes) != 0 {
		t.Fatalf("expected no scenes from empty input, got %d", len(scenes))
	}
}

func TestParseHint(t *testing.T) {
	cases := []struct {
		hint string
		want types.VisualRef
	}{
		{"", types.NoVisual()},
		{"none", types.NoVisual()},
		{"None", types.NoVisual()},
		{"Figure 1", types.FigureRef(0)},
		{"figure 3", types.FigureRef(2)},
		{"Fig 2 shows the architecture", types.FigureRef(1)},
		{"the results table", types.FigureRef(0)},
		{"a diagram of the encoder", types.FigureRef(0)},
		{"something abstract and unfigurable", types.NoVisual()},
		{"Figure 0", types.NoVisual()},
	}
	for _, c := range cases {
		got := parseHint(c.hint)
		if got != c.want {
			t.Errorf("parseHint(%q) = %+v, want %+v", c.hint, got, c.want)
		}
	}
}

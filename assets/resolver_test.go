package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"vidxiv/types"
)

// encodePNG builds a small valid PNG for figure fixtures.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestResolveFigure(t *testing.T) {
	r := NewResolver("")
	p := &types.Paper{
		Title:   "Some Paper",
		Figures: []types.Figure{{Bytes: encodePNG(t, 120, 80)}},
	}
	scene := types.Scene{Title: "Results", Visual: types.FigureRef(0)}

	asset, warning := r.Resolve(scene, 0, p)
	if warning != nil {
		t.Fatalf("unexpected warning: %+v", warning)
	}
	if asset.Generated {
		t.Error("expected a decoded figure, got a generated card")
	}
	bounds := asset.Image.Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 80 {
		t.Errorf("figure decoded as %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestResolveFigureOutOfRange(t *testing.T) {
	r := NewResolver("")
	p := &types.Paper{
		Title:   "Some Paper",
		Figures: []types.Figure{{Bytes: encodePNG(t, 64, 64)}},
	}
	scene := types.Scene{Title: "Results", Visual: types.FigureRef(4)}

	asset, warning := r.Resolve(scene, 2, p)
	if warning == nil {
		t.Fatal("expected a warning for the missing figure")
	}
	if warning.Kind != types.WarningAsset {
		t.Errorf("warning kind = %q", warning.Kind)
	}
	if warning.SceneIndex != 2 {
		t.Errorf("warning scene index = %d", warning.SceneIndex)
	}
	if !asset.Generated || asset.Image == nil {
		t.Error("expected a generated placeholder asset")
	}
}

func TestResolveUndecodableFigure(t *testing.T) {
	r := NewResolver("")
	p := &types.Paper{
		Title:   "Some Paper",
		Figures: []types.Figure{{Bytes: []byte("not an image")}},
	}
	scene := types.Scene{Title: "Results", Visual: types.FigureRef(0)}

	asset, warning := r.Resolve(scene, 0, p)
	if warning == nil {
		t.Fatal("expected a warning for the undecodable figure")
	}
	if warning.Kind != types.WarningAsset {
		t.Errorf("warning kind = %q", warning.Kind)
	}
	if !asset.Generated || asset.Image == nil {
		t.Error("expected a generated placeholder asset")
	}
}

func TestResolveGeneratedCard(t *testing.T) {
	r := NewResolver("")
	p := &types.Paper{Title: "Fallback Heading"}

	// A scene with no title falls back to the paper title
	asset, warning := r.Resolve(types.Scene{Visual: types.GeneratedRef()}, 0, p)
	if warning != nil {
		t.Fatalf("unexpected warning: %+v", warning)
	}
	if !asset.Generated || asset.Image == nil {
		t.Fatal("expected a generated card")
	}
	bounds := asset.Image.Bounds()
	if bounds.Dx() != cardWidth || bounds.Dy() != cardHeight {
		t.Errorf("card is %dx%d, expected %dx%d", bounds.Dx(), bounds.Dy(), cardWidth, cardHeight)
	}

	// No-visual scenes also get a card
	asset, warning = r.Resolve(types.Scene{Title: "Intro", Visual: types.NoVisual()}, 0, p)
	if warning != nil || !asset.Generated {
		t.Errorf("no-visual scene: asset=%+v warning=%+v", asset, warning)
	}
}

func TestWrapHeading(t *testing.T) {
	lines := wrapHeading("short", 34)
	if len(lines) != 1 || lines[0] != "short" {
		t.Errorf("short heading wrapped to %v", lines)
	}

	long := "A Considerably Longer Heading That Should Wrap Across Multiple Lines And Then Get Truncated Eventually Somewhere"
	lines = wrapHeading(long, 34)
	if len(lines) > 3 {
		t.Errorf("heading wrapped to %d lines, expected at most 3", len(lines))
	}
}

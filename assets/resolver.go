package assets

import (
	"bytes"
	"fmt"
	"image"

	"vidxiv/types"

	_ "image/jpeg"
	_ "image/png"
)

// Asset is the resolved visual for one scene: either a decoded paper
// figure or a generated placeholder card.
type Asset struct {
	Image     image.Image
	Generated bool
}

// Resolver maps scene visual references onto concrete images. Resolve
// always yields a usable asset: a broken or missing figure reference
// degrades to a placeholder card plus a warning, never a failure.
type Resolver struct {
	cards *CardDrawer
}

// NewResolver creates a Resolver. fontPath optionally points at a TTF
// used on placeholder cards; empty selects a built-in face.
func NewResolver(fontPath string) *Resolver {
	return &Resolver{cards: NewCardDrawer(fontPath)}
}

// Resolve returns the visual for a scene. The warning is nil unless a
// requested figure could not be used.
func (r *Resolver) Resolve(scene types.Scene, sceneIndex int, p *types.Paper) (Asset, *types.Warning) {
	switch scene.Visual.Kind {
	case types.VisualFigure:
		idx := scene.Visual.FigureIndex
		if idx < 0 || idx >= len(p.Figures) {
			return r.placeholder(scene, p), &types.Warning{
				Kind:       types.WarningAsset,
				SceneIndex: sceneIndex,
				Message:    fmt.Sprintf("figure %d not found (paper has %d), using placeholder", idx+1, len(p.Figures)),
			}
		}
		img, _, err := image.Decode(bytes.NewReader(p.Figures[idx].Bytes))
		if err != nil {
			return r.placeholder(scene, p), &types.Warning{
				Kind:       types.WarningAsset,
				SceneIndex: sceneIndex,
				Message:    fmt.Sprintf("figure %d could not be decoded, using placeholder", idx+1),
			}
		}
		if scene.Title != "" {
			img = r.cards.Annotate(img, scene.Title)
		}
		return Asset{Image: img}, nil

	default:
		return r.placeholder(scene, p), nil
	}
}

func (r *Resolver) placeholder(scene types.Scene, p *types.Paper) Asset {
	heading := scene.Title
	if heading == "" {
		heading = p.Title
	}
	return Asset{Image: r.cards.Draw(heading), Generated: true}
}

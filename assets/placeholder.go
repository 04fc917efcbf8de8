package assets

import (
	"image"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	cardWidth  = 960
	cardHeight = 540

	headingSize = 42.0
)

// cardBackground matches the scene slide background.
var cardBackground = color.NRGBA{R: 248, G: 249, B: 250, A: 255}

// cardAccent is the stripe and heading color.
var cardAccent = color.NRGBA{R: 44, G: 62, B: 80, A: 255}

// CardDrawer renders placeholder cards for scenes without a figure.
type CardDrawer struct {
	face font.Face
}

// NewCardDrawer creates a drawer. fontPath may be empty, in which case
// the context's built-in face is used.
func NewCardDrawer(fontPath string) *CardDrawer {
	d := &CardDrawer{}
	if fontPath == "" {
		return d
	}
	face, err := loadFontFace(fontPath, headingSize)
	if err != nil {
		log.Printf("⚠️  Could not load card font %s, using built-in face: %v", fontPath, err)
		return d
	}
	d.face = face
	return d
}

// Draw renders a card with the given heading centered on it.
func (d *CardDrawer) Draw(heading string) image.Image {
	dc := gg.NewContext(cardWidth, cardHeight)

	dc.SetColor(cardBackground)
	dc.Clear()

	// Accent stripe along the top
	dc.SetColor(cardAccent)
	dc.DrawRectangle(0, 0, cardWidth, 12)
	dc.Fill()

	if d.face != nil {
		dc.SetFontFace(d.face)
	}
	dc.SetColor(cardAccent)

	cx, cy := float64(cardWidth)/2, float64(cardHeight)/2
	lines := wrapHeading(heading, 34)
	lineHeight := headingSize * 1.4
	startY := cy - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, startY+lineHeight*float64(i), 0.5, 0.5)
	}

	return dc.Image()
}

// Annotate draws a heading bar along the top of an existing image,
// used to title figure scenes. The image size is unchanged.
func (d *CardDrawer) Annotate(img image.Image, heading string) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	barHeight := float64(h) * 0.14

	dc := gg.NewContext(w, h)
	dc.DrawImage(img, 0, 0)

	dc.SetRGBA(0.17, 0.24, 0.31, 0.85)
	dc.DrawRectangle(0, 0, float64(w), barHeight)
	dc.Fill()

	if d.face != nil {
		dc.SetFontFace(d.face)
	}
	dc.SetColor(slideText)
	lines := wrapHeading(heading, 48)
	if len(lines) > 1 {
		lines[0] += "…"
	}
	dc.DrawStringAnchored(lines[0], float64(w)/2, barHeight/2, 0.5, 0.5)

	return dc.Image()
}

// wrapHeading breaks a heading into lines of at most maxChars,
// splitting on word boundaries.
func wrapHeading(s string, maxChars int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxChars {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)

	// Cap at three lines to keep the card readable
	if len(lines) > 3 {
		lines = lines[:3]
		lines[2] += "…"
	}
	return lines
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, err
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

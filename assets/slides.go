package assets

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

var (
	introBackground = color.NRGBA{R: 44, G: 62, B: 80, A: 255}
	outroBackground = color.NRGBA{R: 39, G: 174, B: 96, A: 255}
	slideText       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// IntroSlide draws the opening title card for a paper.
func IntroSlide(title string) image.Image {
	return drawSlide(title, introBackground)
}

// OutroSlide draws the closing card.
func OutroSlide() image.Image {
	return drawSlide("Thanks for watching", outroBackground)
}

func drawSlide(heading string, bg color.NRGBA) image.Image {
	dc := gg.NewContext(cardWidth, cardHeight)

	dc.SetColor(bg)
	dc.Clear()

	dc.SetColor(slideText)
	cx, cy := float64(cardWidth)/2, float64(cardHeight)/2
	lines := wrapHeading(heading, 34)
	lineHeight := headingSize * 1.4
	startY := cy - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, startY+lineHeight*float64(i), 0.5, 0.5)
	}
	return dc.Image()
}

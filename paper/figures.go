package paper

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"time"

	"vidxiv/types"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	_ "image/jpeg"
	_ "image/png"
)

const (
	pdfTimeout = 60 * time.Second

	// minFigureDim filters out icons, rules, and decorative fragments
	// embedded in the PDF.
	minFigureDim = 100
)

// EnrichFigures downloads the paper PDF and pulls out embedded images
// as figure candidates, in page order. Failure is non-fatal: a paper
// without figures still renders with placeholder cards.
func EnrichFigures(p *types.Paper) {
	data, err := downloadPDF(PDFURL(p.ID))
	if err != nil {
		log.Printf("⚠️  PDF download failed for %s, continuing without figures: %v", p.ID, err)
		return
	}

	figures, err := extractImages(data)
	if err != nil {
		log.Printf("⚠️  Figure extraction failed for %s, continuing without figures: %v", p.ID, err)
		return
	}

	p.Figures = figures
	log.Printf("✓ Extracted %d figure(s) from %s", len(figures), p.ID)
}

func downloadPDF(url string) ([]byte, error) {
	client := &http.Client{Timeout: pdfTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func extractImages(pdf []byte) ([]types.Figure, error) {
	pages, err := api.ExtractImagesRaw(bytes.NewReader(pdf), nil, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdf image extraction failed: %w", err)
	}

	var figures []types.Figure
	for _, page := range pages {
		for _, img := range page {
			b, err := io.ReadAll(img)
			if err != nil {
				continue
			}
			if !usableFigure(b) {
				continue
			}
			figures = append(figures, types.Figure{Bytes: b})
		}
	}
	return figures, nil
}

// usableFigure keeps only decodable raster images large enough to be an
// actual figure.
func usableFigure(b []byte) bool {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return false
	}
	return cfg.Width >= minFigureDim && cfg.Height >= minFigureDim
}

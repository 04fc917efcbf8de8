package paper

import (
	"log"
	"time"

	"vidxiv/types"

	readability "github.com/go-shiori/go-readability"
)

const extractorTimeout = 30 * time.Second

// EnrichText fills in the paper's full text from its abstract page.
// Extraction failure is non-fatal: the abstract alone is enough to
// script a video, so the paper falls back to it.
func EnrichText(p *types.Paper) {
	article, err := readability.FromURL(AbsURL(p.ID), extractorTimeout)
	if err != nil {
		log.Printf("⚠️  Text extraction failed for %s, using abstract only: %v", p.ID, err)
		p.FullText = p.Abstract
		return
	}

	text := article.TextContent
	if len(text) < len(p.Abstract) {
		text = p.Abstract
	}
	p.FullText = text
	log.Printf("✓ Extracted %d chars of text for %s", len(p.FullText), p.ID)
}

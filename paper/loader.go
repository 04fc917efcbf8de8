package paper

import (
	"context"
	"log"

	"vidxiv/types"
)

// Loader fetches a paper and enriches it with full text and figures,
// ready for scripting.
type Loader struct {
	fetcher *Fetcher
}

// NewLoader creates a Loader against the public arXiv API.
func NewLoader() *Loader {
	return &Loader{fetcher: NewFetcher()}
}

// Load retrieves the paper and fills in everything scripting needs.
// Text and figure enrichment degrade gracefully; only the metadata
// fetch itself can fail.
func (l *Loader) Load(ctx context.Context, paperID string) (*types.Paper, error) {
	p, err := l.fetcher.Fetch(ctx, paperID)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Fetched paper %s: %s", p.ID, p.Title)

	EnrichText(p)
	EnrichFigures(p)
	return p, nil
}

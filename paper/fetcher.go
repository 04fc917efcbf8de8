package paper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"vidxiv/types"

	"github.com/mmcdole/gofeed"
)

const (
	apiBase = "http://export.arxiv.org/api/query"
	absBase = "https://arxiv.org/abs/"
	pdfBase = "https://arxiv.org/pdf/"
)

// Fetcher retrieves paper metadata and text from the arXiv export API.
type Fetcher struct {
	parser  *gofeed.Parser
	apiBase string
}

// NewFetcher creates a Fetcher against the public arXiv API.
func NewFetcher() *Fetcher {
	return &Fetcher{parser: gofeed.NewParser(), apiBase: apiBase}
}

// NewFetcherWithBase creates a Fetcher against a custom API endpoint.
func NewFetcherWithBase(base string) *Fetcher {
	return &Fetcher{parser: gofeed.NewParser(), apiBase: base}
}

// Fetch retrieves the paper identified by an arXiv ID or abs/pdf URL.
// The returned Paper carries title and abstract from the Atom entry;
// full text and figures are filled in separately.
func (f *Fetcher) Fetch(ctx context.Context, rawID string) (*types.Paper, error) {
	id := NormalizeID(rawID)
	if id == "" {
		return nil, &types.FetchError{PaperID: rawID, Err: fmt.Errorf("unrecognized paper identifier")}
	}

	feed, err := f.parser.ParseURLWithContext(f.apiBase+"?id_list="+url.QueryEscape(id), ctx)
	if err != nil {
		return nil, &types.FetchError{PaperID: id, Err: fmt.Errorf("failed to fetch feed: %w", err)}
	}
	if len(feed.Items) == 0 {
		return nil, &types.FetchError{PaperID: id, Err: fmt.Errorf("no entry returned")}
	}

	item := feed.Items[0]
	title := collapseWhitespace(item.Title)
	abstract := collapseWhitespace(item.Description)
	if abstract == "" {
		abstract = collapseWhitespace(item.Content)
	}
	if title == "" || strings.EqualFold(title, "Error") {
		return nil, &types.FetchError{PaperID: id, Err: fmt.Errorf("entry has no usable title")}
	}

	return &types.Paper{
		ID:        id,
		Title:     title,
		Abstract:  abstract,
		FetchedAt: time.Now(),
	}, nil
}

// AbsURL returns the human-readable abstract page for a paper ID.
func AbsURL(id string) string { return absBase + id }

// PDFURL returns the PDF download location for a paper ID.
func PDFURL(id string) string { return pdfBase + id }

var idRe = regexp.MustCompile(`(\d{4}\.\d{4,5})(v\d+)?$`)

// NormalizeID accepts a bare arXiv ID, an abs URL, or a pdf URL, and
// returns the canonical versionless ID. Empty string means no match.
func NormalizeID(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ".pdf")
	raw = strings.TrimSuffix(raw, "/")
	m := idRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

var wsRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

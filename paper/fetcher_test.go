package paper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidxiv/types"
)

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query: search_query=&amp;id_list=1706.03762</title>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <title>Attention Is All You Need</title>
    <summary>The dominant sequence transduction models are based on
      complex recurrent or convolutional neural networks.</summary>
    <published>2017-06-12T17:57:34Z</published>
  </entry>
</feed>`

const emptyFeedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
</feed>`

func atomServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(body))
	}))
}

func TestFetchPaper(t *testing.T) {
	server := atomServer(t, atomFixture)
	defer server.Close()

	f := NewFetcherWithBase(server.URL)
	p, err := f.Fetch(context.Background(), "1706.03762")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ID != "1706.03762" {
		t.Errorf("paper ID = %q", p.ID)
	}
	if p.Title != "Attention Is All You Need" {
		t.Errorf("paper title = %q", p.Title)
	}
	if p.Abstract != "The dominant sequence transduction models are based on complex recurrent or convolutional neural networks." {
		t.Errorf("abstract not collapsed: %q", p.Abstract)
	}
	if p.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestFetchAcceptsURLs(t *testing.T) {
	server := atomServer(t, atomFixture)
	defer server.Close()

	f := NewFetcherWithBase(server.URL)
	for _, raw := range []string{
		"https://arxiv.org/abs/1706.03762",
		"https://arxiv.org/pdf/1706.03762v7.pdf",
	} {
		p, err := f.Fetch(context.Background(), raw)
		if err != nil {
			t.Fatalf("Fetch(%q): %v", raw, err)
		}
		if p.ID != "1706.03762" {
			t.Errorf("Fetch(%q) ID = %q", raw, p.ID)
		}
	}
}

func TestFetchNoEntry(t *testing.T) {
	server := atomServer(t, emptyFeedFixture)
	defer server.Close()

	f := NewFetcherWithBase(server.URL)
	_, err := f.Fetch(context.Background(), "9999.99999")
	if err == nil {
		t.Fatal("expected error for empty feed")
	}
	var fetchErr *types.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
}

func TestFetchBadIdentifier(t *testing.T) {
	f := NewFetcher()
	_, err := f.Fetch(context.Background(), "not-a-paper")
	if err == nil {
		t.Fatal("expected error for unrecognized identifier")
	}
}

func TestNormalizeID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1706.03762", "1706.03762"},
		{"1706.03762v7", "1706.03762"},
		{"https://arxiv.org/abs/1706.03762", "1706.03762"},
		{"https://arxiv.org/abs/1706.03762v3", "1706.03762"},
		{"https://arxiv.org/pdf/1706.03762.pdf", "1706.03762"},
		{"https://arxiv.org/abs/2401.00001/", "2401.00001"},
		{"  1706.03762  ", "1706.03762"},
		{"not-a-paper", ""},
		{"", ""},
		{"17.03762", ""},
	}
	for _, c := range cases {
		if got := NormalizeID(c.raw); got != c.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestPaperURLs(t *testing.T) {
	if got := AbsURL("1706.03762"); got != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("AbsURL = %q", got)
	}
	if got := PDFURL("1706.03762"); got != "https://arxiv.org/pdf/1706.03762" {
		t.Errorf("PDFURL = %q", got)
	}
}

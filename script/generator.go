package script

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vidxiv/types"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// Provider abstracts a paper->script text generator. Implementations
// return raw scene-formatted text; parsing happens separately.
type Provider interface {
	GenerateScenes(ctx context.Context, p *types.Paper, sceneCount int) (string, error)
	ModelName() string
}

// NewDefaultProvider returns a Cohere-backed provider when an API key
// is configured, nil otherwise. A nil provider means the caller falls
// back to template scripting.
func NewDefaultProvider(apiKey, preferredModel string) Provider {
	if apiKey == "" {
		return nil
	}
	model := preferredModel
	if model == "" {
		model = "command-r-08-2024"
	}
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the API
	httpClient := &http.Client{
		Timeout: 90 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereScripts{client: client, model: model}
}

// CohereScripts implements Provider using the Cohere Chat API
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereScripts struct {
	client *cohereclient.Client
	model  string
}

func (c *CohereScripts) ModelName() string { return c.model }

func (c *CohereScripts) GenerateScenes(ctx context.Context, p *types.Paper, sceneCount int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	preamble := "You write concise narration scripts that explain research papers to a general audience."
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:  buildPrompt(p, sceneCount),
		Model:    &c.model,
		Preamble: &preamble,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}

func buildPrompt(p *types.Paper, sceneCount int) string {
	text := p.FullText
	if text == "" {
		text = p.Abstract
	}
	// Keep the prompt within a safe context size
	const maxChars = 12000
	if len(text) > maxChars {
		text = text[:maxChars]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a narration script for a short video about the paper %q.\n", p.Title)
	fmt.Fprintf(&b, "Produce exactly %d scenes. Format each scene as:\n\n", sceneCount)
	b.WriteString("Scene N:\nTitle: <short on-screen heading>\nText: <2-3 spoken sentences>\nFigure Hint: <figure reference like \"Figure 2\", or \"none\">\n\n")
	b.WriteString("Plain conversational language, no markdown, no citations.\n\n")
	b.WriteString("Paper text:\n")
	b.WriteString(text)
	return b.String()
}

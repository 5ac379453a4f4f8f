package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Extractor downloads an article page and pulls out its paragraph text.
type Extractor struct {
	client *http.Client
}

// NewExtractor wires an HTTP client with a bounded timeout.
func NewExtractor(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Extractor{client: client}
}

// Extract fetches the page at link and returns the joined paragraph text of
// its main article body. An empty result is reported as an error so callers
// fall back to the feed-provided description.
func (e *Extractor) Extract(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	// Prefer paragraphs scoped to the article body; many news pages put
	// navigation and teasers in bare <p> tags outside it.
	text := collectParagraphs(doc.Find("article p"))
	if text == "" {
		text = collectParagraphs(doc.Find("main p"))
	}
	if text == "" {
		text = collectParagraphs(doc.Find("p"))
	}
	if text == "" {
		return "", fmt.Errorf("no paragraph text found")
	}
	return text, nil
}

func collectParagraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, p *goquery.Selection) {
		t := strings.TrimSpace(p.Text())
		if t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n\n")
}

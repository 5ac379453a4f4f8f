package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

const userAgent = "PharmaNewsAgent/1.0"

// RSSSource fetches and normalizes entries from one RSS/Atom feed.
type RSSSource struct {
	name      string
	url       string
	client    *http.Client
	extractor *Extractor
}

var _ ports.FeedSource = (*RSSSource)(nil)

// NewRSSSource wires an HTTP client; extractor may be nil to skip full-text
// retrieval and rely on the feed's own description/content.
func NewRSSSource(name, url string, client *http.Client, extractor *Extractor) *RSSSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &RSSSource{name: name, url: url, client: client, extractor: extractor}
}

func (s *RSSSource) Name() string { return s.name }

func (s *RSSSource) URL() string { return s.url }

// Fetch retrieves the feed and converts each entry to a domain.Article.
// Entries without a usable link are dropped.
func (s *RSSSource) Fetch(ctx context.Context) ([]domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned %s", domain.ErrSourceUnreachable, resp.Status)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %v", domain.ErrSourceUnreachable, err)
	}

	source := s.name
	if source == "" {
		source = parsed.Title
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		link := strings.TrimSpace(entry.Link)
		if link == "" {
			continue
		}

		published := time.Time{}
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		articles = append(articles, domain.Article{
			Source:      source,
			SourceURL:   s.url,
			Title:       strings.TrimSpace(entry.Title),
			Link:        link,
			RawContent:  s.content(ctx, entry, link),
			PublishedAt: published,
		})
	}

	return articles, nil
}

// content prefers the full article body when an extractor is configured,
// falling back to the feed's own content or description on any failure.
func (s *RSSSource) content(ctx context.Context, entry *gofeed.Item, link string) string {
	fallback := strings.TrimSpace(entry.Content)
	if fallback == "" {
		fallback = strings.TrimSpace(entry.Description)
	}

	if s.extractor == nil {
		return fallback
	}
	text, err := s.extractor.Extract(ctx, link)
	if err != nil || text == "" {
		return fallback
	}
	return text
}

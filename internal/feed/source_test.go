package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PharmaNewsAgent/internal/domain"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Pharma Wire</title>
    <item>
      <title>Pfizer antimicrobial trial</title>
      <link>https://x/12345</link>
      <description>Early results from the antimicrobial program.</description>
      <pubDate>Mon, 10 Nov 2025 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Entry without a link</title>
      <description>Should be dropped.</description>
    </item>
  </channel>
</rss>`

func TestRSSSourceFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	src := NewRSSSource("pharma-wire", server.URL, server.Client(), nil)

	articles, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 article (linkless entry dropped), got %d", len(articles))
	}

	a := articles[0]
	if a.Title != "Pfizer antimicrobial trial" {
		t.Fatalf("unexpected title: %q", a.Title)
	}
	if a.Link != "https://x/12345" {
		t.Fatalf("unexpected link: %q", a.Link)
	}
	if a.Source != "pharma-wire" {
		t.Fatalf("unexpected source: %q", a.Source)
	}
	if a.RawContent != "Early results from the antimicrobial program." {
		t.Fatalf("unexpected content: %q", a.RawContent)
	}
	want := time.Date(2025, time.November, 10, 8, 0, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published time: %v", a.PublishedAt)
	}
}

func TestRSSSourceHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src := NewRSSSource("down", server.URL, server.Client(), nil)
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, domain.ErrSourceUnreachable) {
		t.Fatalf("expected ErrSourceUnreachable, got %v", err)
	}
}

func TestExtractorPrefersArticleBody(t *testing.T) {
	t.Parallel()

	page := `<html><body>
	  <p>Navigation teaser text</p>
	  <article><p>First paragraph.</p><p>Second paragraph.</p></article>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	e := NewExtractor(server.Client())
	text, err := e.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if text != "First paragraph.\n\nSecond paragraph." {
		t.Fatalf("unexpected extraction: %q", text)
	}
}

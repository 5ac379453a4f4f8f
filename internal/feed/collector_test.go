package feed

import (
	"context"
	"fmt"
	"testing"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

type stubSource struct {
	name     string
	articles []domain.Article
	err      error
}

var _ ports.FeedSource = (*stubSource)(nil)

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) URL() string  { return "https://example.org/" + s.name }
func (s *stubSource) Fetch(context.Context) ([]domain.Article, error) {
	return s.articles, s.err
}

func article(source, title, link string) domain.Article {
	return domain.Article{Source: source, Title: title, Link: link}
}

func TestCollectDeduplicatesFirstSourceWins(t *testing.T) {
	t.Parallel()

	first := &stubSource{name: "first", articles: []domain.Article{
		article("first", "Original title", "https://x/1"),
		article("first", "Unique to first", "https://x/2"),
	}}
	second := &stubSource{name: "second", articles: []domain.Article{
		article("second", "Different title, same link", "https://x/1"),
		article("second", "Unique to second", "https://x/3"),
	}}

	c := NewCollector([]ports.FeedSource{first, second}, nil)
	got := c.Collect(context.Background())

	if len(got) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(got))
	}
	if got[0].Title != "Original title" {
		t.Fatalf("first-source precedence violated: got title %q", got[0].Title)
	}
	wantLinks := []string{"https://x/1", "https://x/2", "https://x/3"}
	for i, want := range wantLinks {
		if got[i].Link != want {
			t.Fatalf("order: position %d got %s, want %s", i, got[i].Link, want)
		}
	}
}

func TestCollectIsolatesSourceFailures(t *testing.T) {
	t.Parallel()

	broken := &stubSource{name: "broken", err: fmt.Errorf("connection refused")}
	healthy := &stubSource{name: "healthy", articles: []domain.Article{
		article("healthy", "Still here", "https://x/10"),
	}}

	c := NewCollector([]ports.FeedSource{broken, healthy}, nil)
	got := c.Collect(context.Background())

	if len(got) != 1 {
		t.Fatalf("expected 1 article from healthy source, got %d", len(got))
	}
	if got[0].Link != "https://x/10" {
		t.Fatalf("unexpected article: %s", got[0].Link)
	}
}

func TestCollectDropsArticlesWithoutLink(t *testing.T) {
	t.Parallel()

	src := &stubSource{name: "src", articles: []domain.Article{
		article("src", "No link", ""),
		article("src", "Has link", "https://x/20"),
	}}

	c := NewCollector([]ports.FeedSource{src}, nil)
	got := c.Collect(context.Background())

	if len(got) != 1 || got[0].Link != "https://x/20" {
		t.Fatalf("expected only the linked article, got %v", got)
	}
}

func TestCollectAllSourcesDownYieldsEmptySet(t *testing.T) {
	t.Parallel()

	c := NewCollector([]ports.FeedSource{
		&stubSource{name: "a", err: fmt.Errorf("dns failure")},
		&stubSource{name: "b", err: fmt.Errorf("timeout")},
	}, nil)

	if got := c.Collect(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty result, got %d articles", len(got))
	}
}

package feed

import (
	"context"
	"log/slog"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

// Collector gathers candidate articles across all configured sources. A
// failing source is logged and skipped; it never aborts collection of the
// others. The returned sequence is deduplicated by link, first occurrence
// wins, preserving source order then feed order.
type Collector struct {
	sources []ports.FeedSource
	logger  *slog.Logger
}

// NewCollector wires the configured sources.
func NewCollector(sources []ports.FeedSource, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{sources: sources, logger: logger}
}

// Collect iterates sources in configured order and returns the deduplicated
// candidate set. Total failure across all sources yields an empty slice, not
// an error.
func (c *Collector) Collect(ctx context.Context) []domain.Article {
	var collected []domain.Article
	seen := map[string]struct{}{}

	for _, src := range c.sources {
		articles, err := src.Fetch(ctx)
		if err != nil {
			c.logger.Warn("source unreachable, skipping",
				"source", src.Name(), "url", src.URL(), "error", err)
			continue
		}

		kept := 0
		for _, article := range articles {
			if article.Link == "" {
				continue
			}
			if _, dup := seen[article.Link]; dup {
				continue
			}
			seen[article.Link] = struct{}{}
			collected = append(collected, article)
			kept++
		}
		c.logger.Debug("source collected", "source", src.Name(), "entries", len(articles), "kept", kept)
	}

	return collected
}

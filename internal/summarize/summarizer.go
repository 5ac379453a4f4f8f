package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

var whitespace = regexp.MustCompile(`\s+`)

// Summarizer reduces an article to a bounded-length summary through a model
// backend. Backends may be stochastic and may fail; the contract here only
// requires non-empty, length-bounded output for success.
type Summarizer struct {
	backend    ports.ModelBackend
	maxInput   int
	maxSummary int
	retries    int
	logger     *slog.Logger
	now        func() time.Time
}

// New wires a backend with the configured input and output budgets. retries is
// the number of additional attempts after the first.
func New(backend ports.ModelBackend, maxInput, maxSummary, retries int, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if maxInput <= 0 {
		maxInput = 4000
	}
	if maxSummary <= 0 {
		maxSummary = 600
	}
	if retries < 0 {
		retries = 0
	}
	return &Summarizer{
		backend:    backend,
		maxInput:   maxInput,
		maxSummary: maxSummary,
		retries:    retries,
		logger:     logger,
		now:        time.Now,
	}
}

// Summarize produces a Summary for the article. Articles without body text
// fall back to the title as input; with neither, summarization fails. Input is
// truncated to the configured budget before the backend sees it.
func (s *Summarizer) Summarize(ctx context.Context, article domain.Article) (domain.Summary, error) {
	input := whitespace.ReplaceAllString(strings.TrimSpace(article.RawContent), " ")
	if input == "" {
		input = strings.TrimSpace(article.Title)
	}
	if input == "" {
		return domain.Summary{}, fmt.Errorf("%w: article %s has no text", domain.ErrSummarizationFailed, article.Link)
	}
	input = truncateRunes(input, s.maxInput)

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		text, err := s.backend.Summarize(ctx, input, s.maxSummary)
		if err != nil {
			lastErr = err
			s.logger.Debug("backend attempt failed", "article", article.Link, "attempt", attempt, "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			lastErr = fmt.Errorf("backend returned empty summary")
			continue
		}
		return domain.Summary{
			ArticleLink: article.Link,
			Text:        truncateRunes(text, s.maxSummary),
			GeneratedAt: s.now(),
		}, nil
	}

	return domain.Summary{}, fmt.Errorf("%w: article %s: %v", domain.ErrSummarizationFailed, article.Link, lastErr)
}

func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

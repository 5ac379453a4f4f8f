package ports

import (
	"context"
	"time"

	"PharmaNewsAgent/internal/domain"
)

// FeedSource pulls raw entries from one upstream feed.
type FeedSource interface {
	Name() string
	URL() string
	Fetch(ctx context.Context) ([]domain.Article, error)
}

// ArticleStore persists processing records and is the sole source of truth for
// idempotence across runs. IsProcessed recognizes only success outcomes.
type ArticleStore interface {
	IsProcessed(ctx context.Context, link string) (bool, error)
	Record(ctx context.Context, rec domain.ProcessingRecord) error
}

// ModelBackend reduces text to a summary of at most maxLength characters.
// Backends may be stochastic; callers only rely on non-empty bounded output.
type ModelBackend interface {
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
}

// Publisher sends a rendered post to one external platform.
type Publisher interface {
	Platform() domain.Platform
	Publish(ctx context.Context, post domain.PlatformPost) error
}

// PostArchiver keeps a local record of rendered posts.
type PostArchiver interface {
	Archive(posts []domain.PlatformPost) error
}

// Scheduler controls when pipeline cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

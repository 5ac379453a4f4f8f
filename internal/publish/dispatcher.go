package publish

import (
	"context"
	"fmt"
	"log/slog"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

// Dispatcher sends rendered posts to their platform adapters. One platform's
// failure never blocks the others; no retries happen at this layer.
type Dispatcher struct {
	publishers map[domain.Platform]ports.Publisher
	logger     *slog.Logger
}

// NewDispatcher indexes the configured adapters by platform.
func NewDispatcher(publishers []ports.Publisher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	byPlatform := make(map[domain.Platform]ports.Publisher, len(publishers))
	for _, p := range publishers {
		byPlatform[p.Platform()] = p
	}
	return &Dispatcher{publishers: byPlatform, logger: logger}
}

// Configured reports whether any adapter is wired.
func (d *Dispatcher) Configured() bool {
	return len(d.publishers) > 0
}

// Dispatch publishes each post independently and returns the per-platform
// errors. Platforms without a configured adapter are skipped silently; posts
// are generated regardless of where they can be published.
func (d *Dispatcher) Dispatch(ctx context.Context, posts map[domain.Platform]domain.PlatformPost) map[domain.Platform]error {
	results := map[domain.Platform]error{}

	for platform, post := range posts {
		adapter, ok := d.publishers[platform]
		if !ok {
			continue
		}
		if err := adapter.Publish(ctx, post); err != nil {
			wrapped := fmt.Errorf("%w: %s: %v", domain.ErrPublishFailed, platform, err)
			d.logger.Warn("publish failed", "platform", platform, "article", post.ArticleLink, "error", err)
			results[platform] = wrapped
			continue
		}
		results[platform] = nil
	}

	return results
}

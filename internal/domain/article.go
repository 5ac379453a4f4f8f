package domain

import "time"

// Article is a single normalized feed entry. Link is the canonical URL and the
// dedup key; duplicates across sources collapse to the first occurrence.
type Article struct {
	Source      string
	SourceURL   string
	Title       string
	Link        string
	RawContent  string
	PublishedAt time.Time
}

// Summary is the bounded-length reduction of an article's content.
type Summary struct {
	ArticleLink string
	Text        string
	GeneratedAt time.Time
}

// Platform identifies a social network target.
type Platform string

const (
	PlatformLinkedIn Platform = "linkedin"
	PlatformFacebook Platform = "facebook"
	PlatformTwitter  Platform = "twitter"
)

// KnownPlatforms lists the platforms with built-in templates, in render order.
func KnownPlatforms() []Platform {
	return []Platform{PlatformLinkedIn, PlatformFacebook, PlatformTwitter}
}

// IsKnownPlatform reports whether name matches a built-in platform.
func IsKnownPlatform(name string) bool {
	for _, p := range KnownPlatforms() {
		if string(p) == name {
			return true
		}
	}
	return false
}

// PlatformPost is one rendered post for one platform. Truncated is set when the
// summary portion had to be shortened to meet the platform limit.
type PlatformPost struct {
	Platform    Platform
	ArticleLink string
	Text        string
	Hashtags    []string
	Truncated   bool
}

// Outcome is the terminal status recorded for one article's processing attempt.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeSummarizeFailed Outcome = "summarize_failed"
	OutcomeRenderFailed    Outcome = "render_failed"
)

// ProcessingRecord is the persisted fact "this article was processed at time T
// with outcome O". Only success outcomes guard against reprocessing; failed
// articles become eligible again on the next cycle.
type ProcessingRecord struct {
	ArticleLink string
	ProcessedAt time.Time
	Outcome     Outcome
}

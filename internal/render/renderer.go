package render

import (
	"fmt"
	"unicode/utf8"

	"PharmaNewsAgent/internal/domain"
)

// Platform character limits for the built-in templates.
const (
	LinkedInLimit = 3000
	FacebookLimit = 63206
	TwitterLimit  = 280
)

const ellipsis = "…"

// Template composes a post for one platform. Build receives the (possibly
// shortened) summary text and the hashtag line; everything else it emits is
// fixed, so over-limit posts can be fit by shrinking only the summary.
type Template struct {
	Limit        int
	HashtagCount int
	Build        func(article domain.Article, summary, hashtagLine string) string
}

// Renderer produces platform posts from an article and its summary. It is a
// pure function of its inputs: no I/O, no hidden state, identical output for
// identical input.
type Renderer struct {
	templates map[domain.Platform]Template
	order     []domain.Platform
}

// New registers the built-in templates for the requested platforms. Unknown
// platforms are skipped; use Register to add custom ones.
func New(platforms []domain.Platform) *Renderer {
	r := &Renderer{templates: map[domain.Platform]Template{}}
	builtin := map[domain.Platform]Template{
		domain.PlatformLinkedIn: linkedInTemplate(),
		domain.PlatformFacebook: facebookTemplate(),
		domain.PlatformTwitter:  twitterTemplate(),
	}
	for _, p := range platforms {
		if tmpl, ok := builtin[p]; ok {
			r.Register(p, tmpl)
		}
	}
	return r
}

// Register adds or replaces the template for a platform. Dispatch never
// changes; new platforms only need a new registry entry.
func (r *Renderer) Register(p domain.Platform, tmpl Template) {
	if _, exists := r.templates[p]; !exists {
		r.order = append(r.order, p)
	}
	r.templates[p] = tmpl
}

// Platforms returns the registered platforms in registration order.
func (r *Renderer) Platforms() []domain.Platform {
	out := make([]domain.Platform, len(r.order))
	copy(out, r.order)
	return out
}

// Render builds one post per registered platform. A platform whose composed
// text cannot fit its limit fails alone; the rest of the mapping is returned.
// The second result maps each failed platform to its rendering error.
func (r *Renderer) Render(article domain.Article, summary domain.Summary) (map[domain.Platform]domain.PlatformPost, map[domain.Platform]error) {
	posts := make(map[domain.Platform]domain.PlatformPost, len(r.templates))
	failures := map[domain.Platform]error{}

	for _, platform := range r.order {
		tmpl := r.templates[platform]
		post, err := renderOne(platform, tmpl, article, summary)
		if err != nil {
			failures[platform] = fmt.Errorf("%w: %s: %v", domain.ErrRenderingFailed, platform, err)
			continue
		}
		posts[platform] = post
	}

	return posts, failures
}

func renderOne(platform domain.Platform, tmpl Template, article domain.Article, summary domain.Summary) (domain.PlatformPost, error) {
	tags := Hashtags(article.Title+" "+summary.Text, tmpl.HashtagCount)
	line := HashtagLine(tags)

	text := tmpl.Build(article, summary.Text, line)
	truncated := false

	if utf8.RuneCountInString(text) > tmpl.Limit {
		// Only the summary portion may shrink; the link, lead-in and
		// call-to-action are fixed.
		overhead := utf8.RuneCountInString(tmpl.Build(article, "", line))
		budget := tmpl.Limit - overhead
		if budget < 2 {
			return domain.PlatformPost{}, fmt.Errorf("fixed content exceeds %d character limit", tmpl.Limit)
		}
		short := string([]rune(summary.Text)[:budget-1]) + ellipsis
		text = tmpl.Build(article, short, line)
		truncated = true
	}

	return domain.PlatformPost{
		Platform:    platform,
		ArticleLink: article.Link,
		Text:        text,
		Hashtags:    tags,
		Truncated:   truncated,
	}, nil
}

func linkedInTemplate() Template {
	return Template{
		Limit:        LinkedInLimit,
		HashtagCount: 3,
		Build: func(a domain.Article, summary, hashtagLine string) string {
			return fmt.Sprintf(
				"📊 Pharmaceutical Update: %s\n\n%s\n\nWhat are your thoughts on this development?\n\n%s\n\nRead more: %s",
				a.Title, summary, hashtagLine, a.Link)
		},
	}
}

func facebookTemplate() Template {
	return Template{
		Limit:        FacebookLimit,
		HashtagCount: 3,
		Build: func(a domain.Article, summary, hashtagLine string) string {
			return fmt.Sprintf(
				"💊 Just came across this interesting pharma news: %s\n\n%s\n\nThoughts? 🤔\n\n%s\n\nRead more: %s",
				a.Title, summary, hashtagLine, a.Link)
		},
	}
}

func twitterTemplate() Template {
	return Template{
		Limit:        TwitterLimit,
		HashtagCount: 2,
		Build: func(a domain.Article, summary, hashtagLine string) string {
			return fmt.Sprintf("New in pharma: %s\n\n%s %s", summary, hashtagLine, a.Link)
		},
	}
}

package render

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"PharmaNewsAgent/internal/domain"
)

func pfizerArticle() domain.Article {
	return domain.Article{
		Source: "Pharma Wire",
		Title:  "Pfizer antimicrobial trial",
		Link:   "https://x/12345",
	}
}

func pfizerSummary() domain.Summary {
	return domain.Summary{
		ArticleLink: "https://x/12345",
		Text:        "Pfizer's new antimicrobial research shows promise in early trials.",
	}
}

func TestRenderLinkedInPost(t *testing.T) {
	t.Parallel()

	r := New(domain.KnownPlatforms())
	posts, failures := r.Render(pfizerArticle(), pfizerSummary())

	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	post, ok := posts[domain.PlatformLinkedIn]
	if !ok {
		t.Fatal("linkedin post missing from mapping")
	}

	if !strings.Contains(post.Text, pfizerSummary().Text) {
		t.Fatalf("post does not contain summary: %q", post.Text)
	}
	if !strings.Contains(post.Text, "#Pharma") {
		t.Fatalf("post does not contain a hashtag line: %q", post.Text)
	}
	if !strings.HasSuffix(post.Text, "https://x/12345") {
		t.Fatalf("post does not end with the article link: %q", post.Text)
	}
	if post.Truncated {
		t.Fatal("short post should not be marked truncated")
	}
}

func TestRenderRespectsPlatformLimits(t *testing.T) {
	t.Parallel()

	long := domain.Summary{
		ArticleLink: "https://x/12345",
		Text:        strings.Repeat("Antimicrobial resistance findings accumulate. ", 40),
	}

	r := New(domain.KnownPlatforms())
	posts, failures := r.Render(pfizerArticle(), long)

	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	limits := map[domain.Platform]int{
		domain.PlatformLinkedIn: LinkedInLimit,
		domain.PlatformFacebook: FacebookLimit,
		domain.PlatformTwitter:  TwitterLimit,
	}
	for platform, post := range posts {
		if n := utf8.RuneCountInString(post.Text); n > limits[platform] {
			t.Fatalf("%s post exceeds limit: %d > %d", platform, n, limits[platform])
		}
	}

	if !posts[domain.PlatformTwitter].Truncated {
		t.Fatal("twitter post should be marked truncated")
	}
	if posts[domain.PlatformFacebook].Truncated {
		t.Fatal("facebook post should not need truncation")
	}
}

func TestRenderPartialSuccess(t *testing.T) {
	t.Parallel()

	r := New([]domain.Platform{domain.PlatformLinkedIn})
	// A platform whose fixed parts alone exceed the limit can never fit.
	tiny := domain.Platform("tiny")
	r.Register(tiny, Template{
		Limit:        10,
		HashtagCount: 1,
		Build: func(a domain.Article, summary, hashtagLine string) string {
			return fmt.Sprintf("%s %s %s", summary, hashtagLine, a.Link)
		},
	})

	posts, failures := r.Render(pfizerArticle(), pfizerSummary())

	if _, ok := posts[domain.PlatformLinkedIn]; !ok {
		t.Fatal("linkedin should render despite tiny platform failing")
	}
	if _, ok := posts[tiny]; ok {
		t.Fatal("tiny platform should not appear in the mapping")
	}
	if len(failures) != 1 {
		t.Fatalf("expected exactly one failure, got %v", failures)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	r := New(domain.KnownPlatforms())
	first, _ := r.Render(pfizerArticle(), pfizerSummary())
	second, _ := r.Render(pfizerArticle(), pfizerSummary())

	for platform, post := range first {
		if second[platform].Text != post.Text {
			t.Fatalf("%s render not deterministic", platform)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	text := "Antimicrobial resistance research: antimicrobial trials show that research accelerates."
	got := ExtractKeywords(text, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 keywords, got %v", got)
	}
	// Both appear twice; alphabetical tiebreak keeps the result stable.
	if got[0] != "antimicrobial" || got[1] != "research" {
		t.Fatalf("unexpected keywords: %v", got)
	}
}

func TestHashtagsStartWithLeadTag(t *testing.T) {
	t.Parallel()

	tags := Hashtags("Pfizer antimicrobial trial results", 3)
	if len(tags) == 0 || tags[0] != "Pharma" {
		t.Fatalf("expected Pharma lead tag, got %v", tags)
	}
	if line := HashtagLine(tags); !strings.HasPrefix(line, "#Pharma") {
		t.Fatalf("unexpected hashtag line: %q", line)
	}
}

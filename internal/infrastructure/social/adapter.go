package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"PharmaNewsAgent/internal/config"
	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

// Default publish endpoints per platform; overridable through configuration
// (useful for relays and for tests).
var defaultEndpoints = map[domain.Platform]string{
	domain.PlatformLinkedIn: "https://api.linkedin.com/v2/ugcPosts",
	domain.PlatformFacebook: "https://graph.facebook.com/v19.0/feed",
	domain.PlatformTwitter:  "https://api.twitter.com/2/tweets",
}

// Adapter posts rendered content to one platform endpoint. The wire protocol
// stays deliberately thin: {platform, text} out, HTTP status back.
type Adapter struct {
	platform domain.Platform
	endpoint string
	token    string
	client   *http.Client
}

var _ ports.Publisher = (*Adapter)(nil)

// NewAdapter builds a publisher for one platform from validated credentials.
func NewAdapter(platform domain.Platform, cfg config.PlatformConfig) *Adapter {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoints[platform]
	}
	return &Adapter{
		platform: platform,
		endpoint: endpoint,
		token:    cfg.AccessToken,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *Adapter) Platform() domain.Platform { return a.platform }

// Publish sends the post text and reports any non-2xx response as an error.
func (a *Adapter) Publish(ctx context.Context, post domain.PlatformPost) error {
	if a.endpoint == "" || a.token == "" {
		return fmt.Errorf("%s adapter misconfigured", a.platform)
	}

	body, err := json.Marshal(map[string]string{
		"platform": string(a.platform),
		"text":     post.Text,
	})
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s returned %s", a.platform, resp.Status)
	}
	return nil
}

// FromConfig builds one adapter per configured platform entry. Platform names
// were validated at config load, so the cast is safe here.
func FromConfig(social map[string]config.PlatformConfig) []ports.Publisher {
	publishers := make([]ports.Publisher, 0, len(social))
	for name, pc := range social {
		publishers = append(publishers, NewAdapter(domain.Platform(name), pc))
	}
	return publishers
}

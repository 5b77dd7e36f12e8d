package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// RobotsPolicy is the robots.txt verdict for a single URL
type RobotsPolicy struct {
	Allowed    bool
	CrawlDelay time.Duration
}

// RobotsChecker checks lookup URLs against the host's robots.txt. Rules are
// fetched once per host and reused until ttl expires.
type RobotsChecker struct {
	client *http.Client
	agent  string
	hosts  *gocache.Cache // host -> *robotstxt.RobotsData
}

// NewRobotsChecker creates a checker that fetches robots.txt with client and
// matches rules for the product token of userAgent. ttl <= 0 keeps rules for
// the life of the checker.
func NewRobotsChecker(client *http.Client, userAgent string, ttl time.Duration) *RobotsChecker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	cleanup := 10 * time.Minute
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &RobotsChecker{
		client: client,
		agent:  NormalizeUserAgent(userAgent),
		hosts:  gocache.New(ttl, cleanup),
	}
}

// Check returns the policy for rawURL. An unreachable or unparsable
// robots.txt allows everything.
func (r *RobotsChecker) Check(ctx context.Context, rawURL string) (RobotsPolicy, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return RobotsPolicy{}, fmt.Errorf("parse URL: %w", err)
	}

	data, err := r.rules(ctx, parsed)
	if err != nil {
		return RobotsPolicy{Allowed: true}, nil
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}

	policy := RobotsPolicy{Allowed: data.TestAgent(path, r.agent)}
	if group := data.FindGroup(r.agent); group != nil {
		policy.CrawlDelay = group.CrawlDelay
	}
	return policy, nil
}

func (r *RobotsChecker) rules(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	if cached, ok := r.hosts.Get(u.Host); ok {
		return cached.(*robotstxt.RobotsData), nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.agent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse maps 4xx to allow-all and 5xx to disallow-all
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.hosts.SetDefault(u.Host, data)
	return data, nil
}

// NormalizeUserAgent reduces a User-Agent header to its product token
// ("Mozilla/5.0 (Windows ...)" -> "Mozilla") for robots.txt group matching
func NormalizeUserAgent(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return ua
	}
	return strings.Split(parts[0], "/")[0]
}

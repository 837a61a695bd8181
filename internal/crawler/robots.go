package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"
)

// RobotsAgent answers robots.txt questions for the spider.
// Rules are fetched once per host and cached for the lifetime of the agent.
// Any error fetching or parsing robots.txt allows the URL (fail open).
type RobotsAgent struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData
}

// NewRobotsAgent creates an agent using client for robots.txt requests.
func NewRobotsAgent(client *http.Client, userAgent string) *RobotsAgent {
	if client == nil {
		client = http.DefaultClient
	}
	return &RobotsAgent{
		client:    client,
		userAgent: userAgent,
		cache:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether rawURL may be fetched.
func (a *RobotsAgent) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return false
	}

	rules := a.rules(ctx, u)
	if rules == nil {
		return true
	}

	group := rules.FindGroup(a.userAgent)
	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

// rules returns the cached rules for u's host, fetching them on first use.
// A nil result means robots.txt was unavailable; that outcome is cached too.
func (a *RobotsAgent) rules(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	host := strings.ToLower(u.Host)

	a.mu.Lock()
	defer a.mu.Unlock()
	if data, ok := a.cache[host]; ok {
		return data
	}

	data, err := a.fetch(ctx, u)
	if err != nil {
		data = nil
	}
	a.cache[host] = data
	return data
}

func (a *RobotsAgent) fetch(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.Scheme+"://"+u.Host+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	// robotstxt treats 5xx as disallow-all; a broken server should not stop the crawl.
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("robots.txt returned status %d", resp.StatusCode)
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}

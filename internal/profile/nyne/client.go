// Package nyne is an HTTP client for the Nyne person-enrichment API.
// It issues the primary enrichment request, polls when the API queues
// the lookup, and fans out to the interactions and article-search
// endpoints once the primary payload carries enough identity to query
// them.
package nyne

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/het-sheth/fulcrumai/internal/config"
	"github.com/het-sheth/fulcrumai/internal/provider"
)

const (
	enrichmentPath   = "/person/enrichment"
	interactionsPath = "/person/interactions"
	articlePath      = "/person/articlesearch"

	maxFollowing   = 500
	maxArticles    = 20
	requestTimeout = 30 * time.Second
)

// Client is an HTTP client for the Nyne API.
type Client struct {
	apiKey       string
	apiSecret    string
	baseURL      string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
}

// NewClient creates a Nyne client from the runtime configuration.
func NewClient(cfg config.Config) *Client {
	return &Client{
		apiKey:       cfg.NyneAPIKey,
		apiSecret:    cfg.NyneAPISecret,
		baseURL:      strings.TrimRight(cfg.NyneBaseURL, "/"),
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Fetch runs the full enrichment flow for one person and returns the
// combined raw payload. An empty map means Nyne had nothing for this
// person; callers treat that as a degraded (mock) enrichment, not an
// error. Follow-up endpoints that fail only cost their own keys in the
// combined payload.
func (c *Client) Fetch(ctx context.Context, email, linkedinURL string) (map[string]any, error) {
	body := enrichmentRequest{
		Email:            email,
		SocialMediaURL:   linkedinURL,
		AIEnhancedSearch: true,
		ProbabilityScore: true,
		Newsfeed:         newsfeedNetworks,
	}

	data, err := c.post(ctx, enrichmentPath, body)
	if err != nil {
		return nil, fmt.Errorf("enrichment: %w", err)
	}
	if len(data) == 0 {
		return map[string]any{}, nil
	}

	combined := make(map[string]any, len(data)+2)
	for k, v := range data {
		combined[k] = v
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	if twitter := twitterURL(data); twitter != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			following, err := c.post(ctx, interactionsPath, interactionsRequest{
				Type:           "following",
				SocialMediaURL: twitter,
				MaxResults:     maxFollowing,
			})
			if err != nil {
				provider.LogError("nyne", "interactions", err)
				return
			}
			if len(following) > 0 {
				mu.Lock()
				combined["social_interactions"] = following
				mu.Unlock()
			}
		}()
	}

	if name, company := identity(data); name != "" && company != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			articles, err := c.post(ctx, articlePath, articleSearchRequest{
				Name:    name,
				Company: company,
				Sort:    "recent",
				Limit:   maxArticles,
			})
			if err != nil {
				provider.LogError("nyne", "articlesearch", err)
				return
			}
			if len(articles) > 0 {
				mu.Lock()
				combined["press_mentions"] = articles
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return combined, nil
}

// post sends a request to a Nyne endpoint and resolves queued tickets
// by polling. It returns the "data" portion of the envelope, or an
// empty map when the lookup came back unsuccessful.
func (c *Client) post(ctx context.Context, path string, body any) (map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	fullURL := c.baseURL + path

	start := time.Now()
	provider.LogRequest("nyne", "POST", fullURL, nil)

	req, err := http.NewRequestWithContext(ctx, "POST", fullURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nyne request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nyne status %d", resp.StatusCode)
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode nyne: %w", err)
	}
	provider.LogResponse("nyne", resp.StatusCode, time.Since(start), len(env.Data))

	if status(env.Data) == "queued" {
		if id, _ := env.Data["request_id"].(string); id != "" {
			return c.poll(ctx, path, id)
		}
		return map[string]any{}, nil
	}

	if !env.Success || len(env.Data) == 0 {
		return map[string]any{}, nil
	}
	return env.Data, nil
}

// poll re-checks a queued request until it resolves or the poll window
// closes. A window that closes without resolution yields an empty
// result rather than an error so one slow lookup never wedges
// onboarding.
func (c *Client) poll(ctx context.Context, path, requestID string) (map[string]any, error) {
	fullURL := fmt.Sprintf("%s%s?request_id=%s", c.baseURL, path, url.QueryEscape(requestID))
	deadline := time.Now().Add(c.pollTimeout)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create poll request: %w", err)
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("nyne poll: %w", err)
		}

		var env apiEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decode nyne poll: %w", err)
		}
		resp.Body.Close()

		switch status(env.Data) {
		case "completed":
			return env.Data, nil
		case "failed", "not_found", "error":
			provider.LogError("nyne", "poll", fmt.Errorf("request %s ended with status %q", requestID, status(env.Data)))
			return map[string]any{}, nil
		case "queued", "processing", "pending":
			continue
		default:
			// Some responses drop the status field once the
			// payload is ready.
			if env.Success && len(env.Data) > 0 {
				return env.Data, nil
			}
		}
	}

	provider.LogError("nyne", "poll", fmt.Errorf("request %s timed out after %s", requestID, c.pollTimeout))
	return map[string]any{}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-API-Secret", c.apiSecret)
}

func status(data map[string]any) string {
	s, _ := data["status"].(string)
	return strings.ToLower(s)
}

// twitterURL digs a Twitter profile URL out of the enrichment payload.
// It checks the social_profiles object first, then the flat top-level
// keys some payload variants use.
func twitterURL(data map[string]any) string {
	if profiles, ok := data["social_profiles"].(map[string]any); ok {
		for _, key := range []string{"twitter", "twitter_url"} {
			if s, ok := profiles[key].(string); ok && s != "" {
				return s
			}
		}
	}
	for _, key := range []string{"twitter_url", "twitter"} {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// identity pulls a display name and current company from the payload
// for the article search. Either one missing disables the search.
func identity(data map[string]any) (name, company string) {
	for _, key := range []string{"name", "full_name"} {
		if s, ok := data[key].(string); ok && s != "" {
			name = s
			break
		}
	}
	if name == "" {
		first, _ := data["first_name"].(string)
		last, _ := data["last_name"].(string)
		name = strings.TrimSpace(first + " " + last)
	}
	for _, key := range []string{"company", "company_name"} {
		if s, ok := data[key].(string); ok && s != "" {
			company = s
			break
		}
	}
	return name, company
}

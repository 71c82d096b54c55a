// Package legistar is an HTTP client for the Legistar legislative
// data API, plus the transform from Legistar records to civic events.
package legistar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/het-sheth/fulcrumai/internal/provider"
)

const (
	// DefaultDaysAhead is the meeting lookahead window.
	DefaultDaysAhead = 30

	// DefaultDaysBack is the legislation lookback window.
	DefaultDaysBack = 30

	// matterPageSize caps one legislation fetch.
	matterPageSize = 50

	requestTimeout = 30 * time.Second
)

// Client is an HTTP client for the Legistar API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Legistar client for one municipality's API root,
// e.g. https://webapi.legistar.com/v1/sfgov.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// FetchUpcomingEvents fetches meetings scheduled in the next daysAhead
// days, ordered by date.
func (c *Client) FetchUpcomingEvents(ctx context.Context, daysAhead int) ([]Event, error) {
	today := time.Now().Format("2006-01-02")
	future := time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")

	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("EventDate ge datetime'%s' and EventDate le datetime'%s'", today, future))
	params.Set("$orderby", "EventDate")

	var events []Event
	if err := c.get(ctx, "/Events", params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FetchRecentLegislation fetches matters introduced in the last
// daysBack days, newest first.
func (c *Client) FetchRecentLegislation(ctx context.Context, daysBack int) ([]Matter, error) {
	cutoff := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("MatterIntroDate ge datetime'%s'", cutoff))
	params.Set("$orderby", "MatterIntroDate desc")
	params.Set("$top", fmt.Sprintf("%d", matterPageSize))

	var matters []Matter
	if err := c.get(ctx, "/Matters", params, &matters); err != nil {
		return nil, err
	}
	return matters, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	start := time.Now()
	provider.LogRequest("legistar", "GET", c.baseURL+path, nil)

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		provider.LogError("legistar", "fetch", err)
		return fmt.Errorf("legistar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("legistar status %d", resp.StatusCode)
		provider.LogError("legistar", "fetch", err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		provider.LogError("legistar", "decode", err)
		return fmt.Errorf("decode legistar: %w", err)
	}

	provider.LogResponse("legistar", resp.StatusCode, time.Since(start), 1)
	return nil
}

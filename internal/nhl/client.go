package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// BaseURL is the public api-web host. No auth, no rate-limit headers.
	BaseURL = "https://api-web.nhle.com/v1"

	userAgent      = "rinkside/1.0"
	requestTimeout = 15 * time.Second
)

// PayloadCache stores raw response bodies keyed by URL. A nil cache
// disables caching entirely.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// Client fetches the three api-web resources the pipeline consumes.
type Client struct {
	baseURL string
	http    *http.Client
	cache   PayloadCache
}

// New creates a client with a custom base URL (empty means the public API).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// NewClient creates a client against the public API.
func NewClient() *Client {
	return New(BaseURL)
}

// WithCache attaches a payload cache and returns the client.
func (c *Client) WithCache(cache PayloadCache) *Client {
	c.cache = cache
	return c
}

// FetchSchedule retrieves the full season schedule for a club.
func (c *Client) FetchSchedule(ctx context.Context, teamAbbrev, seasonID string) (*ScheduleResponse, error) {
	url := fmt.Sprintf("%s/club-schedule-season/%s/%s", c.baseURL, teamAbbrev, seasonID)

	var schedule ScheduleResponse
	if err := c.getJSON(ctx, url, &schedule); err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	return &schedule, nil
}

// FetchScores retrieves the league-wide score summary for one calendar date
// (YYYY-MM-DD).
func (c *Client) FetchScores(ctx context.Context, date string) (*ScoreResponse, error) {
	url := fmt.Sprintf("%s/score/%s", c.baseURL, date)

	var scores ScoreResponse
	if err := c.getJSON(ctx, url, &scores); err != nil {
		return nil, fmt.Errorf("fetch scores for %s: %w", date, err)
	}
	return &scores, nil
}

// FetchRoster retrieves the club roster snapshot for a season.
func (c *Client) FetchRoster(ctx context.Context, teamAbbrev, seasonID string) (RosterResponse, error) {
	url := fmt.Sprintf("%s/roster/%s/%s", c.baseURL, teamAbbrev, seasonID)

	var roster RosterResponse
	if err := c.getJSON(ctx, url, &roster); err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	return roster, nil
}

// getJSON performs one GET and decodes the body into out, consulting the
// payload cache first when one is attached.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, url); ok {
			return json.Unmarshal(body, out)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	log.Printf("[nhl-client] fetched %s (%d bytes)", url, len(body))
	if c.cache != nil {
		c.cache.Set(ctx, url, body)
	}
	return nil
}

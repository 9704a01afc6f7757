package shield

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/argus-watch/argus/backend/internal/events"
)

// Client talks to the Shield mitigation service's read-only admin API.
// Both collections are idempotent GETs and may be re-polled freely.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the Shield admin API at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetActiveBlocks fetches the currently-enforced block set.
func (c *Client) GetActiveBlocks(ctx context.Context) ([]events.ActiveBlockRecord, error) {
	var blocks []events.ActiveBlockRecord
	if err := c.get(ctx, "/v1/blocks", nil, &blocks); err != nil {
		return nil, fmt.Errorf("fetch active blocks: %w", err)
	}
	return blocks, nil
}

// GetDetections fetches the most recent detection log entries, newest
// first, bounded by limit.
func (c *Client) GetDetections(ctx context.Context, limit int) ([]events.DetectionRecord, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var detections []events.DetectionRecord
	if err := c.get(ctx, "/v1/detections", params, &detections); err != nil {
		return nil, fmt.Errorf("fetch detections: %w", err)
	}
	return detections, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("shield API returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

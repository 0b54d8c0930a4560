// Package zealy talks to the Zealy community API and renders leaderboard
// replies.
package zealy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"questrelay/pkg/httpclient"
)

const apiKeyHeader = "x-api-key"

// Entry is one leaderboard row as returned by the API. Upstream order is
// descending XP; the client does not re-sort.
type Entry struct {
	Name string `json:"name"`
	XP   int    `json:"xp"`
}

type leaderboardResponse struct {
	Leaderboard []Entry `json:"leaderboard"`
}

// Client calls the Zealy API for one community.
type Client struct {
	baseURL   string
	subdomain string
	apiKey    string
	http      *retryablehttp.Client
}

// NewClient validates the API settings and builds a client with the shared
// retrying HTTP transport.
func NewClient(baseURL, subdomain, apiKey string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("zealy base URL is required")
	}
	if strings.TrimSpace(subdomain) == "" {
		return nil, errors.New("zealy subdomain is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("zealy api key is required")
	}

	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		subdomain: strings.TrimSpace(subdomain),
		apiKey:    strings.TrimSpace(apiKey),
		http:      httpclient.New(),
	}, nil
}

// Leaderboard fetches one leaderboard page for the configured community.
func (c *Client) Leaderboard(ctx context.Context, page, limit int) ([]Entry, error) {
	endpoint := fmt.Sprintf("%s/communities/%s/leaderboard", c.baseURL, url.PathEscape(c.subdomain))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build leaderboard request: %w", err)
	}

	query := req.URL.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = query.Encode()
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("leaderboard request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload leaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode leaderboard response: %w", err)
	}

	return payload.Leaderboard, nil
}

// Package nominatim provides a client for the OpenStreetMap Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ChiiKang/BlueBreathe/internal/geocoding"
	"github.com/ChiiKang/BlueBreathe/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Nominatim API.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// ProviderName identifies this provider.
	ProviderName = "nominatim"

	// defaultUserAgent is sent on every request; Nominatim's usage policy
	// requires an identifying User-Agent.
	defaultUserAgent = "bluebreathe-route-planner/1.0"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default single-attempt resilient client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry
}

// Client is a Nominatim search API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPDoer
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		// Geocode misses are cached upstream, so a failed lookup is not
		// retried; the circuit breaker still shields the shared endpoint.
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:       ProviderName,
			Timeout:    timeout,
			MaxRetries: 0,
			Registry:   cfg.Registry,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// searchResult is a single entry of the Nominatim search response.
// Latitude and longitude arrive as decimal strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves an address to its best match, requesting at most one result.
func (c *Client) Lookup(ctx context.Context, address string) (*geocoding.Result, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", geocoding.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	// A non-success status is treated the same as an empty result set.
	if resp.StatusCode != http.StatusOK {
		return nil, geocoding.ErrNotFound
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if len(results) == 0 {
		return nil, geocoding.ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return &geocoding.Result{
		Coordinate:  geocoding.Coordinate{Lat: lat, Lon: lon},
		DisplayName: results[0].DisplayName,
	}, nil
}

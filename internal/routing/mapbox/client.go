// Package mapbox provides a client for the Mapbox Directions API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ChiiKang/BlueBreathe/internal/provider/resilience"
	"github.com/ChiiKang/BlueBreathe/internal/routing"
)

const (
	// DefaultBaseURL is the base URL for the Mapbox API.
	DefaultBaseURL = "https://api.mapbox.com"

	// ProviderName identifies this provider.
	ProviderName = "mapbox"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Mapbox client.
type ClientConfig struct {
	// AccessToken is the Mapbox API access token (required).
	AccessToken string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default single-attempt resilient client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry
}

// Client is a Mapbox Directions API client.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  HTTPDoer
}

// NewClient creates a new Mapbox client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		// A failed directions call degrades to "no routes" upstream;
		// retrying would only delay that answer.
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:       ProviderName,
			Timeout:    timeout,
			MaxRetries: 0,
			Registry:   cfg.Registry,
		})
	}

	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  httpClient,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type directionsResponse struct {
	Code   string          `json:"code"`
	Routes []responseRoute `json:"routes"`
}

type responseRoute struct {
	Distance float64       `json:"distance"`
	Duration float64       `json:"duration"`
	Geometry string        `json:"geometry"`
	Legs     []responseLeg `json:"legs"`
}

type responseLeg struct {
	Steps []responseStep `json:"steps"`
}

type responseStep struct {
	Maneuver responseManeuver `json:"maneuver"`
}

type responseManeuver struct {
	// Location is [longitude, latitude].
	Location []float64 `json:"location"`
}

// Routes fetches up to three driving alternatives from the Directions API.
// Geometry is requested as a polyline encoded at 1e-6 precision with the
// full route shape, and per-step maneuvers are included.
func (c *Client) Routes(ctx context.Context, origin, destination routing.Coordinate) ([]routing.Route, error) {
	coords := fmt.Sprintf("%f,%f;%f,%f", origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	params := url.Values{}
	params.Set("geometries", "polyline6")
	params.Set("overview", "full")
	params.Set("steps", "true")
	params.Set("alternatives", "true")
	params.Set("access_token", c.accessToken)

	reqURL := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s?%s", c.baseURL, coords, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &routing.Error{Provider: ProviderName, Op: "create request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Op:       "directions request",
			Err:      fmt.Errorf("%w: %v", routing.ErrProviderUnavailable, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &routing.Error{
			Provider: ProviderName,
			Op:       "directions request",
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var directions directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&directions); err != nil {
		return nil, &routing.Error{Provider: ProviderName, Op: "decode response", Err: err}
	}

	if directions.Code != "Ok" || len(directions.Routes) == 0 {
		return nil, routing.ErrNoRoutes
	}

	routes := make([]routing.Route, 0, len(directions.Routes))
	for _, r := range directions.Routes {
		route := routing.Route{
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
			Geometry:        r.Geometry,
		}
		for _, leg := range r.Legs {
			for _, step := range leg.Steps {
				if len(step.Maneuver.Location) < 2 {
					continue
				}
				route.Steps = append(route.Steps, routing.Coordinate{
					Lat: step.Maneuver.Location[1],
					Lon: step.Maneuver.Location[0],
				})
			}
		}
		routes = append(routes, route)
	}

	return routes, nil
}

// Package waqi provides a client for the World Air Quality Index API.
package waqi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
	"github.com/ChiiKang/BlueBreathe/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the WAQI API.
	DefaultBaseURL = "https://api.waqi.info"

	// ProviderName identifies this provider.
	ProviderName = "waqi"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the WAQI client.
type ClientConfig struct {
	// Token is the WAQI API token (required).
	Token string

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

// Client is a WAQI geolocated-feed API client.
type Client struct {
	token      string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new WAQI client.
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
		// Failed lookups degrade to a neutral reading upstream, so a
		// single attempt keeps route scoring fast under provider outages.
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:       ProviderName,
			Timeout:    timeout,
			MaxRetries: 0,
			Registry:   cfg.Registry,
		})
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// aqiValue tolerates the "-" placeholder WAQI reports for stations
// without a computed index.
type aqiValue struct {
	Value float64
	Valid bool
}

func (v *aqiValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		v.Value = num
		v.Valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("aqi is neither number nor string: %s", data)
	}
	// "-" and other non-numeric strings mean "no index".
	v.Valid = false
	return nil
}

type feedResponse struct {
	Status string    `json:"status"`
	Data   *feedData `json:"data"`
}

type feedData struct {
	AQI  aqiValue                `json:"aqi"`
	IAQI map[string]iaqiEntry    `json:"iaqi"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

type iaqiEntry struct {
	V float64 `json:"v"`
}

// Reading fetches the nearest-station observation for a point via the
// geolocated feed endpoint.
func (c *Client) Reading(ctx context.Context, lat, lon float64) (*airquality.Reading, error) {
	params := url.Values{}
	params.Set("token", c.token)

	reqURL := fmt.Sprintf("%s/feed/geo:%f;%f/?%s", c.baseURL, lat, lon, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}

	if feed.Status != "ok" || feed.Data == nil {
		return nil, airquality.ErrNoData
	}

	pollutants := make(map[string]float64)
	for code, entry := range feed.Data.IAQI {
		if _, tracked := airquality.TrackedPollutants[code]; tracked {
			pollutants[code] = entry.V
		}
	}

	station := feed.Data.City.Name
	if station == "" {
		station = airquality.StationUnknown
	}

	// A station without a computed index still reports its name and
	// individual pollutants; the overall AQI defaults to neutral.
	aqi := feed.Data.AQI.Value
	if !feed.Data.AQI.Valid {
		aqi = airquality.NeutralAQI
	}

	return &airquality.Reading{
		AQI:        aqi,
		Pollutants: pollutants,
		Station:    station,
	}, nil
}

// Package airquality provides point air-quality readings with graceful
// degradation when the upstream provider fails.
package airquality

import (
	"context"
	"errors"
)

// NeutralAQI is the placeholder index value used when no reading exists.
const NeutralAQI = 50

// Station placeholder names for degraded readings.
const (
	// StationUnknown is used when the provider omits the station name.
	StationUnknown = "Unknown"
	// StationNoData marks a reading where the provider had no data.
	StationNoData = "No Data"
	// StationFetchError marks a reading synthesized after a provider failure.
	StationFetchError = "Error Fetching Data"
)

// ErrNoData indicates the provider responded but had no reading for the point.
var ErrNoData = errors.New("no air quality data for location")

// TrackedPollutants is the set of pollutant codes surfaced to clients.
// Everything else reported by the provider is dropped.
var TrackedPollutants = map[string]struct{}{
	"pm25": {},
	"pm10": {},
	"o3":   {},
	"no2":  {},
	"so2":  {},
	"co":   {},
}

// Reading is an air-quality observation at a point.
type Reading struct {
	// AQI is the air quality index at the nearest station.
	AQI float64 `json:"aqi"`

	// Pollutants maps tracked pollutant codes to their measured values.
	// Never nil.
	Pollutants map[string]float64 `json:"pollutants"`

	// Station is the reporting station name, or a placeholder for
	// degraded readings.
	Station string `json:"station"`
}

// FallbackReading builds a neutral reading carrying the given placeholder
// station name.
func FallbackReading(station string) Reading {
	return Reading{
		AQI:        NeutralAQI,
		Pollutants: map[string]float64{},
		Station:    station,
	}
}

// Provider defines the interface for air quality data providers.
type Provider interface {
	// Reading returns the observation from the station nearest to the
	// given point. Returns ErrNoData when the provider has no reading.
	Reading(ctx context.Context, lat, lon float64) (*Reading, error)

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

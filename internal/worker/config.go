// Package worker provides background station refresh processing for BlueBreathe.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChiiKang/BlueBreathe/internal/stations"
)

// MonitoredStation is a station whose daily AQI record the worker maintains.
type MonitoredStation struct {
	// Name is the station name persisted with each record.
	Name string

	// Lat and Lon locate the station for provider lookups.
	Lat float64
	Lon float64
}

// RefreshConfig holds configuration for the station refresh job.
type RefreshConfig struct {
	// Stations are the stations to refresh.
	// If empty, uses DefaultStations.
	Stations []MonitoredStation

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Stations:    DefaultStations(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// stationDirectory lists the stations the worker should refresh.
type stationDirectory interface {
	ListMonitoredStations(ctx context.Context) ([]stations.MonitoredStation, error)
}

// LoadStations reads the monitored stations from the directory, so a
// station row added there is picked up on the next refresh without a
// redeploy. The built-in Klang Valley list covers a fresh deployment
// whose monitored_stations table is empty or unreadable.
func LoadStations(ctx context.Context, dir stationDirectory, logger zerolog.Logger) []MonitoredStation {
	monitored, err := dir.ListMonitoredStations(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list monitored stations, using defaults")
		return DefaultStations()
	}
	if len(monitored) == 0 {
		logger.Info().Msg("no monitored stations configured, using defaults")
		return DefaultStations()
	}

	loaded := make([]MonitoredStation, len(monitored))
	for i, s := range monitored {
		loaded[i] = MonitoredStation{Name: s.Name, Lat: s.Lat, Lon: s.Lon}
	}
	return loaded
}

// DefaultStations returns the default monitored stations around the
// Klang Valley.
func DefaultStations() []MonitoredStation {
	return []MonitoredStation{
		{Name: "Batu Muda, Kuala Lumpur", Lat: 3.2124, Lon: 101.6809},
		{Name: "Cheras, Kuala Lumpur", Lat: 3.1063, Lon: 101.7177},
		{Name: "Petaling Jaya", Lat: 3.1073, Lon: 101.6067},
		{Name: "Shah Alam", Lat: 3.0733, Lon: 101.5185},
		{Name: "Klang", Lat: 3.0449, Lon: 101.4456},
		{Name: "Kajang", Lat: 2.9935, Lon: 101.7874},
		{Name: "Putrajaya", Lat: 2.9264, Lon: 101.6964},
		{Name: "Banting", Lat: 2.8148, Lon: 101.5030},
	}
}

// Package stations serves persisted per-station AQI history and forecasts.
package stations

import (
	"context"
	"time"
)

// Record is a single dated AQI observation or forecast for a station.
type Record struct {
	Date string  `json:"date"`
	AQI  float64 `json:"aqi"`
}

// StationData groups a station's recent history with its forecast.
type StationData struct {
	Historical []Record `json:"historical"`
	Forecast   []Record `json:"forecast"`
}

// MonitoredStation is a station the refresh worker keeps current, with
// the coordinates used for provider lookups.
type MonitoredStation struct {
	Name string
	Lat  float64
	Lon  float64
}

// Repository defines storage operations for station AQI records.
type Repository interface {
	// ListStations returns the distinct station names with records.
	ListStations(ctx context.Context) ([]string, error)

	// HistoricalRecords returns records for the station with
	// from <= date < to, ordered by date ascending.
	HistoricalRecords(ctx context.Context, station string, from, to time.Time) ([]Record, error)

	// ForecastRecords returns up to limit records for the station with
	// date >= from, ordered by date ascending.
	ForecastRecords(ctx context.Context, station string, from time.Time, limit int) ([]Record, error)

	// UpsertRecord inserts or replaces the station's record for a date.
	UpsertRecord(ctx context.Context, station string, date time.Time, aqi float64) error

	// ListMonitoredStations returns the stations the refresh worker
	// should keep current, with their lookup coordinates.
	ListMonitoredStations(ctx context.Context) ([]MonitoredStation, error)
}

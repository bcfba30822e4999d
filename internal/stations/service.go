package stations

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	historyWindowDays = 7
	forecastLimit     = 7
)

// ServiceConfig holds configuration for the stations service.
type ServiceConfig struct {
	// Repository is the station record store.
	Repository Repository

	// Logger for service operations.
	Logger zerolog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service serves station listings and per-station history/forecast windows.
type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new stations service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		now:    now,
	}
}

// Stations returns every station name with at least one record.
func (s *Service) Stations(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// StationData returns the past week of records and the next week of
// forecasts for a station. Today's record counts as historical; the
// forecast window starts tomorrow. A station with no records yields
// empty slices rather than an error.
func (s *Service) StationData(ctx context.Context, station string) (StationData, error) {
	today := s.today()
	past7 := today.AddDate(0, 0, -historyWindowDays)
	forecastStart := today.AddDate(0, 0, 1)

	historical, err := s.repo.HistoricalRecords(ctx, station, past7, forecastStart)
	if err != nil {
		return StationData{}, fmt.Errorf("historical records for %q: %w", station, err)
	}

	forecast, err := s.repo.ForecastRecords(ctx, station, forecastStart, forecastLimit)
	if err != nil {
		return StationData{}, fmt.Errorf("forecast records for %q: %w", station, err)
	}

	if historical == nil {
		historical = []Record{}
	}
	if forecast == nil {
		forecast = []Record{}
	}

	return StationData{Historical: historical, Forecast: forecast}, nil
}

// today truncates the clock to local midnight.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

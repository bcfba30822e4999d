package airquality

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the air quality service.
type ServiceConfig struct {
	// Provider is the air quality data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service provides point air-quality readings. Lookups never fail:
// provider errors degrade to a neutral placeholder reading so that a
// single bad station cannot sink a whole route score.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new air quality service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Reading returns the observation nearest to the point. A provider with
// no data yields a "No Data" placeholder; any other failure yields an
// "Error Fetching Data" placeholder. The error return is always nil.
func (s *Service) Reading(ctx context.Context, lat, lon float64) (Reading, error) {
	reading, err := s.provider.Reading(ctx, lat, lon)
	if err != nil {
		station := StationFetchError
		if errors.Is(err, ErrNoData) {
			station = StationNoData
		}
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("air quality lookup degraded")
		return FallbackReading(station), nil
	}

	if reading.Pollutants == nil {
		reading.Pollutants = map[string]float64{}
	}

	return *reading, nil
}

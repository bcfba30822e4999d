package routing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the routing service.
type ServiceConfig struct {
	// Provider is the routing data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service computes driving route alternatives between two coordinates.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new routing service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Routes returns the provider's route alternatives in provider order.
// Provider failures degrade to an empty result rather than an error, so
// a directions outage surfaces to callers the same way as "no route".
func (s *Service) Routes(ctx context.Context, origin, destination Coordinate) ([]Route, error) {
	if err := validateCoordinate(origin); err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	if err := validateCoordinate(destination); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	routes, err := s.provider.Routes(ctx, origin, destination)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Float64("origin_lat", origin.Lat).
			Float64("origin_lon", origin.Lon).
			Float64("dest_lat", destination.Lat).
			Float64("dest_lon", destination.Lon).
			Msg("route lookup failed")
		return []Route{}, nil
	}

	s.logger.Debug().
		Int("routes", len(routes)).
		Str("provider", s.provider.Name()).
		Msg("routes computed")

	return routes, nil
}

func validateCoordinate(c Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}

package geocoding

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service provides address geocoding with process-wide memoization.
// Cache entries are keyed by the verbatim address string and never evicted;
// the same address always resolves to the same coordinate within a session,
// so concurrent populates racing on a key are harmless (last write wins).
type Service struct {
	provider Provider
	logger   zerolog.Logger

	mu    sync.RWMutex
	cache map[string]Result
}

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cache:    make(map[string]Result),
	}
}

// Geocode resolves an address to a coordinate, serving repeated lookups
// for the exact same string from the cache without a provider call.
func (s *Service) Geocode(ctx context.Context, address string) (Result, error) {
	s.mu.RLock()
	cached, ok := s.cache[address]
	s.mu.RUnlock()
	if ok {
		s.logger.Debug().Str("address", address).Msg("geocode cache hit")
		return cached, nil
	}

	result, err := s.provider.Lookup(ctx, address)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("address", address).
			Str("provider", s.provider.Name()).
			Msg("geocode lookup failed")
		return Result{}, err
	}

	s.mu.Lock()
	s.cache[address] = *result
	s.mu.Unlock()

	s.logger.Debug().
		Str("address", address).
		Float64("lat", result.Lat).
		Float64("lon", result.Lon).
		Msg("geocoded address")

	return *result, nil
}

// CacheSize returns the number of memoized addresses.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

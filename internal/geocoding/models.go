// Package geocoding converts free-form addresses into geographic coordinates.
package geocoding

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for geocoding operations.
var (
	// ErrNotFound indicates the geocoder returned no match for the address.
	ErrNotFound = errors.New("address could not be geocoded")
	// ErrProviderUnavailable indicates the geocoding provider is unreachable.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks that the coordinate is within valid ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Result is a geocoded address.
type Result struct {
	Coordinate

	// DisplayName is the geocoder's canonical name for the match, if any.
	DisplayName string
}

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Lookup resolves an address to its best-match result.
	// Returns ErrNotFound when the provider has no match.
	Lookup(ctx context.Context, address string) (*Result, error)

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Package routing provides driving route computation between coordinates.
package routing

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for routing operations.
var (
	// ErrNoRoutes indicates the provider found no route between the points.
	ErrNoRoutes = errors.New("no routes found")
	// ErrProviderUnavailable indicates the routing provider is unreachable.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
)

// Error wraps provider-level failures with context.
type Error struct {
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("routing %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Route is a single driving route alternative.
type Route struct {
	// DistanceMeters is the total route distance.
	DistanceMeters float64

	// DurationSeconds is the estimated travel time.
	DurationSeconds float64

	// Geometry is the full route shape as an encoded polyline
	// at 1e-6 precision.
	Geometry string

	// Steps are the maneuver locations along the route, in travel order.
	Steps []Coordinate
}

// Provider defines the interface for routing providers.
type Provider interface {
	// Routes returns up to three driving route alternatives from origin
	// to destination, fastest first. Returns ErrNoRoutes when the provider
	// cannot connect the two points.
	Routes(ctx context.Context, origin, destination Coordinate) ([]Route, error)

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

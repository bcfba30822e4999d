package routing_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChiiKang/BlueBreathe/internal/routing"
)

type fakeProvider struct {
	routes []routing.Route
	err    error
	calls  int
}

func (p *fakeProvider) Routes(_ context.Context, _, _ routing.Coordinate) ([]routing.Route, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.routes, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func TestService_Routes_PreservesProviderOrder(t *testing.T) {
	provider := &fakeProvider{
		routes: []routing.Route{
			{DistanceMeters: 1000, DurationSeconds: 120},
			{DistanceMeters: 1500, DurationSeconds: 100},
			{DistanceMeters: 2000, DurationSeconds: 90},
		},
	}
	service := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	routes, err := service.Routes(context.Background(),
		routing.Coordinate{Lat: 3.14, Lon: 101.69},
		routing.Coordinate{Lat: 3.16, Lon: 101.71},
	)
	require.NoError(t, err)
	require.Len(t, routes, 3)

	// Fastest-first provider ordering is kept intact.
	assert.Equal(t, 1000.0, routes[0].DistanceMeters)
	assert.Equal(t, 2000.0, routes[2].DistanceMeters)
}

func TestService_Routes_ProviderFailureYieldsEmpty(t *testing.T) {
	provider := &fakeProvider{err: routing.ErrProviderUnavailable}
	service := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	routes, err := service.Routes(context.Background(),
		routing.Coordinate{Lat: 3.14, Lon: 101.69},
		routing.Coordinate{Lat: 3.16, Lon: 101.71},
	)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestService_Routes_RejectsInvalidCoordinates(t *testing.T) {
	provider := &fakeProvider{}
	service := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	_, err := service.Routes(context.Background(),
		routing.Coordinate{Lat: 95, Lon: 101.69},
		routing.Coordinate{Lat: 3.16, Lon: 101.71},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin")

	_, err = service.Routes(context.Background(),
		routing.Coordinate{Lat: 3.14, Lon: 101.69},
		routing.Coordinate{Lat: 3.16, Lon: 190},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination")

	assert.Equal(t, 0, provider.calls, "invalid input must not reach the provider")
}

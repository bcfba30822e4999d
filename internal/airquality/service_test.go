package airquality_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
)

type fakeProvider struct {
	reading *airquality.Reading
	err     error
}

func (p *fakeProvider) Reading(_ context.Context, _, _ float64) (*airquality.Reading, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.reading, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func TestService_Reading_Success(t *testing.T) {
	provider := &fakeProvider{
		reading: &airquality.Reading{
			AQI:        87,
			Pollutants: map[string]float64{"pm25": 87, "o3": 12},
			Station:    "Batu Muda, Kuala Lumpur",
		},
	}
	service := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	reading, err := service.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err)

	assert.Equal(t, 87.0, reading.AQI)
	assert.Equal(t, "Batu Muda, Kuala Lumpur", reading.Station)
	assert.Equal(t, 87.0, reading.Pollutants["pm25"])
}

func TestService_Reading_NoDataFallback(t *testing.T) {
	provider := &fakeProvider{err: airquality.ErrNoData}
	service := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	reading, err := service.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err, "degraded lookups must not surface errors")

	assert.Equal(t, float64(airquality.NeutralAQI), reading.AQI)
	assert.Equal(t, airquality.StationNoData, reading.Station)
	assert.NotNil(t, reading.Pollutants)
	assert.Empty(t, reading.Pollutants)
}

func TestService_Reading_ProviderErrorFallback(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection reset")}
	service := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	reading, err := service.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err)

	assert.Equal(t, float64(airquality.NeutralAQI), reading.AQI)
	assert.Equal(t, airquality.StationFetchError, reading.Station)
	assert.Empty(t, reading.Pollutants)
}

func TestService_Reading_NilPollutantsNormalized(t *testing.T) {
	provider := &fakeProvider{
		reading: &airquality.Reading{AQI: 42, Station: "Somewhere"},
	}
	service := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	reading, err := service.Reading(context.Background(), 3.2124, 101.6809)
	require.NoError(t, err)
	assert.NotNil(t, reading.Pollutants)
}

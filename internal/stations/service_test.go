package stations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChiiKang/BlueBreathe/internal/stations"
)

type fakeRepository struct {
	names      []string
	historical []stations.Record
	forecast   []stations.Record
	err        error

	historicalFrom, historicalTo time.Time
	forecastFrom                 time.Time
	forecastLimit                int
}

func (r *fakeRepository) ListStations(_ context.Context) ([]string, error) {
	return r.names, r.err
}

func (r *fakeRepository) HistoricalRecords(_ context.Context, _ string, from, to time.Time) ([]stations.Record, error) {
	r.historicalFrom, r.historicalTo = from, to
	return r.historical, r.err
}

func (r *fakeRepository) ForecastRecords(_ context.Context, _ string, from time.Time, limit int) ([]stations.Record, error) {
	r.forecastFrom, r.forecastLimit = from, limit
	return r.forecast, r.err
}

func (r *fakeRepository) UpsertRecord(_ context.Context, _ string, _ time.Time, _ float64) error {
	return r.err
}

func (r *fakeRepository) ListMonitoredStations(_ context.Context) ([]stations.MonitoredStation, error) {
	return nil, r.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_StationData_Windows(t *testing.T) {
	repo := &fakeRepository{
		historical: []stations.Record{{Date: "2026-08-30", AQI: 64}},
		forecast:   []stations.Record{{Date: "2026-09-02", AQI: 58}},
	}
	service := stations.NewService(stations.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		Now:        fixedClock(time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)),
	})

	data, err := service.StationData(context.Background(), "Batu Muda")
	require.NoError(t, err)

	// History spans the past 7 days through today; forecast starts tomorrow.
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), repo.historicalFrom)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), repo.historicalTo)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), repo.forecastFrom)
	assert.Equal(t, 7, repo.forecastLimit)

	assert.Equal(t, []stations.Record{{Date: "2026-08-30", AQI: 64}}, data.Historical)
	assert.Equal(t, []stations.Record{{Date: "2026-09-02", AQI: 58}}, data.Forecast)
}

func TestService_StationData_UnknownStationYieldsEmpty(t *testing.T) {
	service := stations.NewService(stations.ServiceConfig{
		Repository: &fakeRepository{},
		Logger:     zerolog.Nop(),
		Now:        fixedClock(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
	})

	data, err := service.StationData(context.Background(), "nowhere")
	require.NoError(t, err)

	assert.NotNil(t, data.Historical)
	assert.NotNil(t, data.Forecast)
	assert.Empty(t, data.Historical)
	assert.Empty(t, data.Forecast)
}

func TestService_Stations(t *testing.T) {
	repo := &fakeRepository{names: []string{"Batu Muda", "Cheras"}}
	service := stations.NewService(stations.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})

	names, err := service.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Batu Muda", "Cheras"}, names)
}

func TestService_Stations_EmptyNotNil(t *testing.T) {
	service := stations.NewService(stations.ServiceConfig{
		Repository: &fakeRepository{},
		Logger:     zerolog.Nop(),
	})

	names, err := service.Stations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestService_StationData_RepositoryError(t *testing.T) {
	service := stations.NewService(stations.ServiceConfig{
		Repository: &fakeRepository{err: errors.New("connection closed")},
		Logger:     zerolog.Nop(),
	})

	_, err := service.StationData(context.Background(), "Batu Muda")
	assert.Error(t, err)
}

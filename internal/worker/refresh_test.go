package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
	"github.com/ChiiKang/BlueBreathe/internal/stations"
)

type fakeLookup struct {
	reading *airquality.Reading
	err     error
}

func (l *fakeLookup) Reading(_ context.Context, _, _ float64) (airquality.Reading, error) {
	if l.err != nil {
		return airquality.Reading{}, l.err
	}
	if l.reading != nil {
		return *l.reading, nil
	}
	return airquality.Reading{AQI: 60, Pollutants: map[string]float64{}, Station: "Live Station"}, nil
}

type fakeStore struct {
	mu      sync.Mutex
	upserts []upsert
	err     error
}

type upsert struct {
	station string
	date    time.Time
	aqi     float64
}

func (s *fakeStore) UpsertRecord(_ context.Context, station string, date time.Time, aqi float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, upsert{station: station, date: date, aqi: aqi})
	return nil
}

func testConfig() RefreshConfig {
	return RefreshConfig{
		Stations: []MonitoredStation{
			{Name: "Batu Muda, Kuala Lumpur", Lat: 3.2124, Lon: 101.6809},
			{Name: "Cheras, Kuala Lumpur", Lat: 3.1063, Lon: 101.7177},
		},
		Concurrency: 2,
		Timeout:     5 * time.Second,
	}
}

func TestRefreshJob_Run_PersistsReadings(t *testing.T) {
	store := &fakeStore{}
	job := NewRefreshJob(RefreshJobConfig{
		Config: testConfig(),
		Logger: zerolog.Nop(),
		Lookup: &fakeLookup{},
		Store:  store,
		Now: func() time.Time {
			return time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
		},
	})

	result := job.Run(context.Background())

	assert.Equal(t, 2, result.Successful)
	assert.Zero(t, result.Failed)
	assert.Zero(t, result.Skipped)

	require.Len(t, store.upserts, 2)
	// Records land on today's date at midnight.
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), store.upserts[0].date)
	assert.Equal(t, 60.0, store.upserts[0].aqi)
}

func TestRefreshJob_Run_SkipsDegradedReadings(t *testing.T) {
	store := &fakeStore{}
	fallback := airquality.FallbackReading(airquality.StationNoData)
	lookup := &fakeLookup{reading: &fallback}
	job := NewRefreshJob(RefreshJobConfig{
		Config: testConfig(),
		Logger: zerolog.Nop(),
		Lookup: lookup,
		Store:  store,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 2, result.Skipped)
	assert.Zero(t, result.Successful)
	assert.Empty(t, store.upserts, "placeholder readings must not be persisted")
}

func TestRefreshJob_Run_CountsStoreFailures(t *testing.T) {
	store := &fakeStore{err: errors.New("connection closed")}
	job := NewRefreshJob(RefreshJobConfig{
		Config: testConfig(),
		Logger: zerolog.Nop(),
		Lookup: &fakeLookup{},
		Store:  store,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)
}

func TestRefreshJob_Metrics(t *testing.T) {
	job := NewRefreshJob(RefreshJobConfig{
		Config: testConfig(),
		Logger: zerolog.Nop(),
		Lookup: &fakeLookup{},
		Store:  &fakeStore{},
	})

	job.Run(context.Background())
	job.Run(context.Background())

	metrics := job.GetMetrics()
	assert.Equal(t, int64(2), metrics.TotalRefreshes)
	assert.Equal(t, int64(4), metrics.SuccessfulRecords)
}

type fakeDirectory struct {
	monitored []stations.MonitoredStation
	err       error
}

func (d *fakeDirectory) ListMonitoredStations(_ context.Context) ([]stations.MonitoredStation, error) {
	return d.monitored, d.err
}

func TestLoadStations_FromDirectory(t *testing.T) {
	dir := &fakeDirectory{
		monitored: []stations.MonitoredStation{
			{Name: "Seremban", Lat: 2.7297, Lon: 101.9381},
			{Name: "Nilai", Lat: 2.8202, Lon: 101.7985},
		},
	}

	loaded := LoadStations(context.Background(), dir, zerolog.Nop())

	require.Len(t, loaded, 2)
	assert.Equal(t, MonitoredStation{Name: "Seremban", Lat: 2.7297, Lon: 101.9381}, loaded[0])
	assert.Equal(t, MonitoredStation{Name: "Nilai", Lat: 2.8202, Lon: 101.7985}, loaded[1])
}

func TestLoadStations_EmptyDirectoryFallsBack(t *testing.T) {
	loaded := LoadStations(context.Background(), &fakeDirectory{}, zerolog.Nop())
	assert.Equal(t, DefaultStations(), loaded)
}

func TestLoadStations_DirectoryErrorFallsBack(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("relation does not exist")}
	loaded := LoadStations(context.Background(), dir, zerolog.Nop())
	assert.Equal(t, DefaultStations(), loaded)
}

func TestNewRefreshJob_Defaults(t *testing.T) {
	job := NewRefreshJob(RefreshJobConfig{
		Logger: zerolog.Nop(),
		Lookup: &fakeLookup{},
		Store:  &fakeStore{},
	})

	assert.NotEmpty(t, job.config.Stations)
	assert.Equal(t, 3, job.config.Concurrency)
	assert.Equal(t, 30*time.Second, job.config.Timeout)
}

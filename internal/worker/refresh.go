package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
)

// pointLookup fetches an air-quality reading for a coordinate.
type pointLookup interface {
	Reading(ctx context.Context, lat, lon float64) (airquality.Reading, error)
}

// recordStore persists daily station records.
type recordStore interface {
	UpsertRecord(ctx context.Context, station string, date time.Time, aqi float64) error
}

// RefreshJob fetches current readings for the monitored stations and
// persists them as today's records.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger
	lookup pointLookup
	store  recordStore
	now    func() time.Time

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRefreshes      int64
	SuccessfulRecords   int64
	SkippedRecords      int64
	FailedRecords       int64
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config RefreshConfig
	Logger zerolog.Logger
	Lookup pointLookup
	Store  recordStore

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Stations) == 0 {
		config = DefaultRefreshConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &RefreshJob{
		config:  config,
		logger:  cfg.Logger,
		lookup:  cfg.Lookup,
		store:   cfg.Store,
		now:     now,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh operation.
type RefreshResult struct {
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalStations int
	Successful    int
	Skipped       int
	Failed        int
	Errors        []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Station string
	Error   string
}

// Run executes the refresh job for all configured stations.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := j.now()
	result := &RefreshResult{
		StartTime:     startTime,
		TotalStations: len(j.config.Stations),
	}

	j.logger.Info().
		Int("stations", result.TotalStations).
		Int("concurrency", j.config.Concurrency).
		Msg("starting station refresh job")

	stationsChan := make(chan MonitoredStation, len(j.config.Stations))
	resultsChan := make(chan stationResult, len(j.config.Stations))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, stationsChan, resultsChan)
		}()
	}

	for _, s := range j.config.Stations {
		stationsChan <- s
	}
	close(stationsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for sr := range resultsChan {
		switch {
		case sr.err != "":
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				Station: sr.station,
				Error:   sr.err,
			})
		case sr.skipped:
			result.Skipped++
		default:
			result.Successful++
		}
	}

	result.EndTime = j.now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("station refresh job completed")

	return result
}

type stationResult struct {
	station string
	skipped bool
	err     string
}

func (j *RefreshJob) refreshWorker(ctx context.Context, stations <-chan MonitoredStation, results chan<- stationResult) {
	for station := range stations {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshStation(ctx, station)
		}
	}
}

func (j *RefreshJob) refreshStation(ctx context.Context, station MonitoredStation) stationResult {
	stationCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	reading, err := j.lookup.Reading(stationCtx, station.Lat, station.Lon)
	if err != nil {
		return stationResult{station: station.Name, err: err.Error()}
	}

	// Degraded readings carry a neutral placeholder AQI; persisting one
	// would overwrite a real record with noise.
	if reading.Station == airquality.StationNoData || reading.Station == airquality.StationFetchError {
		j.logger.Warn().
			Str("station", station.Name).
			Str("placeholder", reading.Station).
			Msg("skipping degraded reading")
		return stationResult{station: station.Name, skipped: true}
	}

	today := j.today()
	if err := j.store.UpsertRecord(stationCtx, station.Name, today, reading.AQI); err != nil {
		return stationResult{station: station.Name, err: err.Error()}
	}

	j.logger.Debug().
		Str("station", station.Name).
		Float64("aqi", reading.AQI).
		Msg("station record refreshed")

	return stationResult{station: station.Name}
}

// today truncates the clock to local midnight.
func (j *RefreshJob) today() time.Time {
	now := j.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRecords += int64(result.Successful)
	j.metrics.SkippedRecords += int64(result.Skipped)
	j.metrics.FailedRecords += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRecords:   j.metrics.SuccessfulRecords,
		SkippedRecords:      j.metrics.SkippedRecords,
		FailedRecords:       j.metrics.FailedRecords,
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
	}
}

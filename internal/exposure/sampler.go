package exposure

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
	"github.com/ChiiKang/BlueBreathe/internal/routing"
	"github.com/ChiiKang/BlueBreathe/pkg/polyline"
)

const (
	// maxIntermediateSamples bounds AQI lookups per route: first step,
	// last step, and up to this many strided intermediates.
	maxIntermediateSamples = 4

	// maxAnnotatedPoints caps the emitted route shape resolution.
	maxAnnotatedPoints = 100

	// geometryPrecision is the polyline precision of route geometry.
	geometryPrecision = 6
)

// PointLookup fetches an air-quality reading for a coordinate.
// Implementations are expected to degrade rather than fail.
type PointLookup interface {
	Reading(ctx context.Context, lat, lon float64) (airquality.Reading, error)
}

// SamplerConfig holds configuration for the route sampler.
type SamplerConfig struct {
	// Lookup resolves AQI readings for sample points.
	Lookup PointLookup

	// Logger for sampler operations.
	Logger zerolog.Logger
}

// Sampler annotates a route's geometry with air-quality readings.
type Sampler struct {
	lookup PointLookup
	logger zerolog.Logger
}

// NewSampler creates a new route sampler.
func NewSampler(cfg SamplerConfig) *Sampler {
	return &Sampler{
		lookup: cfg.Lookup,
		logger: cfg.Logger,
	}
}

// sample pairs a chosen coordinate with its fetched reading. The slice of
// samples keeps selection order so nearest-sample ties resolve
// deterministically (first minimum wins).
type sample struct {
	lat, lon float64
	reading  airquality.Reading
}

// Sample decodes the route geometry, fetches AQI readings for a bounded
// set of sample steps, and spreads them over the shape. A route without
// geometry yields no points and a neutral average.
func (s *Sampler) Sample(ctx context.Context, route routing.Route) RouteExposure {
	if route.Geometry == "" {
		return RouteExposure{Points: []AnnotatedPoint{}, AverageAQI: airquality.NeutralAQI}
	}

	coords := polyline.Decode(route.Geometry, geometryPrecision)
	if len(coords) == 0 {
		return RouteExposure{Points: []AnnotatedPoint{}, AverageAQI: airquality.NeutralAQI}
	}

	steps := chooseSampleSteps(route.Steps)
	if len(steps) == 0 {
		// No maneuver steps; fall back to a single sample at the
		// start of the shape.
		steps = []routing.Coordinate{{Lat: coords[0].Lat, Lon: coords[0].Lon}}
	}

	samples := s.fetchSamples(ctx, steps)
	points := annotate(coords, samples)

	return RouteExposure{
		Points:     points,
		AverageAQI: averageAQI(points),
	}
}

// chooseSampleSteps picks the steps worth an external AQI lookup. Short
// routes sample every step; longer ones sample the first and last steps
// plus up to four strided intermediates, so a route never costs more
// than six lookups.
func chooseSampleSteps(steps []routing.Coordinate) []routing.Coordinate {
	n := len(steps)
	if n <= 6 {
		return steps
	}

	stride := (n - 2) / maxIntermediateSamples
	if stride < 1 {
		stride = 1
	}

	chosen := make([]routing.Coordinate, 0, maxIntermediateSamples+2)
	chosen = append(chosen, steps[0])
	for i := 1; i < n-1 && len(chosen) < maxIntermediateSamples+1; i += stride {
		chosen = append(chosen, steps[i])
	}
	return append(chosen, steps[n-1])
}

// fetchSamples looks up readings for every sample step concurrently.
// Results are written by index so selection order survives regardless of
// completion order.
func (s *Sampler) fetchSamples(ctx context.Context, steps []routing.Coordinate) []sample {
	samples := make([]sample, len(steps))

	var wg sync.WaitGroup
	for i, step := range steps {
		wg.Add(1)
		go func(i int, step routing.Coordinate) {
			defer wg.Done()

			reading, err := s.lookup.Reading(ctx, step.Lat, step.Lon)
			if err != nil {
				// Lookups normally degrade internally; keep the
				// route scorable if one does not.
				s.logger.Warn().Err(err).
					Float64("lat", step.Lat).
					Float64("lon", step.Lon).
					Msg("sample lookup failed")
				reading = airquality.FallbackReading(airquality.StationFetchError)
			}

			samples[i] = sample{lat: step.Lat, lon: step.Lon, reading: reading}
		}(i, step)
	}
	wg.Wait()

	return samples
}

// nearestAQI returns the AQI of the sample closest to the point by squared
// Euclidean distance in lat/lon space. Ties go to the earliest sample.
func nearestAQI(lat, lon float64, samples []sample) float64 {
	best := 0
	bestDist := math.Inf(1)
	for i, sm := range samples {
		dLat := sm.lat - lat
		dLon := sm.lon - lon
		if d := dLat*dLat + dLon*dLon; d < bestDist {
			bestDist = d
			best = i
		}
	}
	return samples[best].reading.AQI
}

// annotate spreads sample readings over the decoded shape. The first and
// last coordinates become Start and Destination; intermediates are strided
// to keep the emitted count near maxAnnotatedPoints.
func annotate(coords []polyline.Coordinate, samples []sample) []AnnotatedPoint {
	points := make([]AnnotatedPoint, 0, maxAnnotatedPoints+2)

	first := coords[0]
	points = append(points, AnnotatedPoint{
		Position: [2]float64{first.Lat, first.Lon},
		AQI:      nearestAQI(first.Lat, first.Lon, samples),
		Name:     "Start",
	})

	if len(coords) > 2 {
		stride := len(coords) / maxAnnotatedPoints
		if stride < 1 {
			stride = 1
		}
		for i := stride; i < len(coords)-stride; i += stride {
			c := coords[i]
			points = append(points, AnnotatedPoint{
				Position: [2]float64{c.Lat, c.Lon},
				AQI:      nearestAQI(c.Lat, c.Lon, samples),
				Name:     fmt.Sprintf("Waypoint %d", i),
			})
		}
	}

	last := coords[len(coords)-1]
	points = append(points, AnnotatedPoint{
		Position: [2]float64{last.Lat, last.Lon},
		AQI:      nearestAQI(last.Lat, last.Lon, samples),
		Name:     "Destination",
	})

	return points
}

// averageAQI returns the mean AQI over the points, rounded to one decimal.
func averageAQI(points []AnnotatedPoint) float64 {
	if len(points) == 0 {
		return airquality.NeutralAQI
	}

	var sum float64
	for _, p := range points {
		sum += p.AQI
	}
	return math.Round(sum/float64(len(points))*10) / 10
}

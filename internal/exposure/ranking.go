package exposure

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ChiiKang/BlueBreathe/internal/routing"
)

// routeSampler scores a single route.
type routeSampler interface {
	Sample(ctx context.Context, route routing.Route) RouteExposure
}

// RankerConfig holds configuration for the route ranker.
type RankerConfig struct {
	// Sampler scores individual routes.
	Sampler routeSampler

	// Logger for ranking operations.
	Logger zerolog.Logger
}

// Ranker scores route alternatives and orders them by average AQI.
type Ranker struct {
	sampler routeSampler
	logger  zerolog.Logger
}

// NewRanker creates a new route ranker.
func NewRanker(cfg RankerConfig) *Ranker {
	return &Ranker{
		sampler: cfg.Sampler,
		logger:  cfg.Logger,
	}
}

// Rank samples every route and returns them sorted by average AQI,
// cleanest first. IDs and base names reflect the provider's original
// ordering: the provider's first route is the fastest and keeps its
// "(Fastest)" marker wherever it lands after sorting.
func (r *Ranker) Rank(ctx context.Context, routes []routing.Route) []RankedRoute {
	ranked := make([]RankedRoute, len(routes))

	// Routes are independent; sample them concurrently, writing by
	// index to keep provider order until the sort.
	var wg sync.WaitGroup
	for i, route := range routes {
		wg.Add(1)
		go func(i int, route routing.Route) {
			defer wg.Done()

			result := r.sampler.Sample(ctx, route)
			name := fmt.Sprintf("Route %d", i+1)
			if i == 0 {
				name += " (Fastest)"
			}

			ranked[i] = RankedRoute{
				ID:          fmt.Sprintf("route%d", i+1),
				Name:        name,
				DistanceKm:  round2(route.DistanceMeters / 1000),
				DurationMin: round2(route.DurationSeconds / 60),
				Points:      result.Points,
				AverageAQI:  result.AverageAQI,
			}
		}(i, route)
	}
	wg.Wait()

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].AverageAQI < ranked[b].AverageAQI
	})

	if len(ranked) > 0 {
		ranked[0].Name += " (Lowest Pollution)"

		// First occurrence of the maximum, matching the ascending scan.
		maxIdx := 0
		for i := 1; i < len(ranked); i++ {
			if ranked[i].AverageAQI > ranked[maxIdx].AverageAQI {
				maxIdx = i
			}
		}
		if ranked[maxIdx].ID != ranked[0].ID {
			ranked[maxIdx].Name += " (Highest Pollution)"
		}
	}

	r.logger.Debug().Int("routes", len(ranked)).Msg("routes ranked")

	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

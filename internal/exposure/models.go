// Package exposure scores driving routes by the air quality along them.
//
// Each route's encoded geometry is decoded, a bounded set of sample points
// is chosen from its maneuver steps, an AQI reading is fetched per sample,
// and the readings are spread over the route shape by nearest-sample
// assignment. Routes are then ranked by their average AQI.
package exposure

// AnnotatedPoint is a point on a route's geometry carrying the AQI of its
// nearest sample. Position is [lat, lon].
type AnnotatedPoint struct {
	Position [2]float64 `json:"position"`
	AQI      float64    `json:"aqi"`
	Name     string     `json:"name"`
}

// RouteExposure is the sampling result for a single route.
type RouteExposure struct {
	// Points is the annotated route shape, capped near 100 points.
	Points []AnnotatedPoint

	// AverageAQI is the mean AQI over Points, rounded to one decimal.
	AverageAQI float64
}

// RankedRoute is a route alternative scored and named for presentation.
type RankedRoute struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DistanceKm  float64          `json:"distanceKm"`
	DurationMin float64          `json:"durationMin"`
	Points      []AnnotatedPoint `json:"points"`
	AverageAQI  float64          `json:"avgAQI"`
}

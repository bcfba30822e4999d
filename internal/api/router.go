// Package api provides the HTTP API for BlueBreathe.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ChiiKang/BlueBreathe/internal/api/handler"
	"github.com/ChiiKang/BlueBreathe/internal/api/middleware"
	"github.com/ChiiKang/BlueBreathe/internal/airquality"
	"github.com/ChiiKang/BlueBreathe/internal/exposure"
	"github.com/ChiiKang/BlueBreathe/internal/geocoding"
	"github.com/ChiiKang/BlueBreathe/internal/provider/resilience"
	"github.com/ChiiKang/BlueBreathe/internal/routing"
	"github.com/ChiiKang/BlueBreathe/internal/stations"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	Registry          *resilience.Registry
	GeocodingService  *geocoding.Service
	RoutingService    *routing.Service
	AirQualityService *airquality.Service
	Ranker            *exposure.Ranker
	StationService    *stations.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "bluebreathe-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.CORS)                 // Browser frontend runs on another host
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Registry)
	routeHandler := handler.NewRouteHandler(cfg.GeocodingService, cfg.RoutingService, cfg.Ranker)
	airQualityHandler := handler.NewAirQualityHandler(cfg.AirQualityService)
	stationHandler := handler.NewStationHandler(cfg.StationService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Get("/", opsHandler.Home)
	r.Get("/health", opsHandler.HealthCheck)

	// Route planning fans out to geocoding, directions and up to
	// routeCount x 6 AQI lookups per request - strict rate limiting
	r.With(expensiveRateLimit).Get("/api/routes", routeHandler.GetRoutes)

	r.With(standardRateLimit).Get("/api/air-quality", airQualityHandler.GetAirQuality)
	r.With(standardRateLimit).Get("/stations", stationHandler.ListStations)
	r.With(standardRateLimit).Get("/data/{station}", stationHandler.GetStationData)

	return r
}

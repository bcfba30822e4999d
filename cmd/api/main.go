// Package main provides the entrypoint for the BlueBreathe API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ChiiKang/BlueBreathe/internal/airquality"
	"github.com/ChiiKang/BlueBreathe/internal/airquality/waqi"
	"github.com/ChiiKang/BlueBreathe/internal/api"
	"github.com/ChiiKang/BlueBreathe/internal/api/middleware"
	"github.com/ChiiKang/BlueBreathe/internal/database"
	"github.com/ChiiKang/BlueBreathe/internal/exposure"
	"github.com/ChiiKang/BlueBreathe/internal/geocoding"
	"github.com/ChiiKang/BlueBreathe/internal/geocoding/nominatim"
	"github.com/ChiiKang/BlueBreathe/internal/provider/resilience"
	"github.com/ChiiKang/BlueBreathe/internal/routing"
	"github.com/ChiiKang/BlueBreathe/internal/routing/mapbox"
	"github.com/ChiiKang/BlueBreathe/internal/stations"
	"github.com/ChiiKang/BlueBreathe/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "bluebreathe-api"

	// Local development loads secrets from .env; absence is fine.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting BlueBreathe API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Shared provider registry for circuit breaker health reporting
	registry := resilience.NewRegistry()

	// Initialize geocoding service
	geocodingService := geocoding.NewService(geocoding.ServiceConfig{
		Provider: nominatim.NewClient(nominatim.ClientConfig{
			Registry: registry,
		}),
		Logger: log,
	})
	log.Info().Msg("geocoding service initialized")

	// Initialize routing service
	mapboxToken := os.Getenv("MAPBOX_API_KEY")
	if mapboxToken == "" {
		log.Warn().Msg("MAPBOX_API_KEY not set - route planning will fail")
	}
	routingService := routing.NewService(routing.ServiceConfig{
		Provider: mapbox.NewClient(mapbox.ClientConfig{
			AccessToken: mapboxToken,
			Registry:    registry,
		}),
		Logger: log,
	})
	log.Info().Msg("routing service initialized")

	// Initialize air quality service
	waqiToken := os.Getenv("WAQI_API_TOKEN")
	if waqiToken == "" {
		log.Warn().Msg("WAQI_API_TOKEN not set - readings will degrade to neutral")
	}
	airQualityService := airquality.NewService(airquality.ServiceConfig{
		Provider: waqi.NewClient(waqi.ClientConfig{
			Token:    waqiToken,
			Registry: registry,
		}),
		Logger: log,
	})
	log.Info().Msg("air quality service initialized")

	// Initialize route exposure sampler and ranker
	sampler := exposure.NewSampler(exposure.SamplerConfig{
		Lookup: airQualityService,
		Logger: log,
	})
	ranker := exposure.NewRanker(exposure.RankerConfig{
		Sampler: sampler,
		Logger:  log,
	})

	// Initialize station repository and service
	stationService := stations.NewService(stations.ServiceConfig{
		Repository: stations.NewPostgresRepository(pool),
		Logger:     log,
	})
	log.Info().Msg("station service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		Registry:          registry,
		GeocodingService:  geocodingService,
		RoutingService:    routingService,
		AirQualityService: airQualityService,
		Ranker:            ranker,
		StationService:    stationService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

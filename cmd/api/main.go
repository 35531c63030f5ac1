// Package main provides the entrypoint for the VoltRoute API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/api"
	"github.com/voltroute/voltroute/internal/api/middleware"
	"github.com/voltroute/voltroute/internal/catalog"
	"github.com/voltroute/voltroute/internal/catalog/chargetrip"
	"github.com/voltroute/voltroute/internal/catalog/geogouv"
	"github.com/voltroute/voltroute/internal/config"
	"github.com/voltroute/voltroute/internal/provider/fallback"
	"github.com/voltroute/voltroute/internal/route"
	"github.com/voltroute/voltroute/internal/route/openrouteservice"
	"github.com/voltroute/voltroute/internal/station"
	"github.com/voltroute/voltroute/internal/station/irve"
	"github.com/voltroute/voltroute/internal/telemetry"
	"github.com/voltroute/voltroute/internal/trip"
	"github.com/voltroute/voltroute/internal/trip/soapcalc"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "voltroute-api"

	cfg := config.Load()

	// Setup structured logging
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting VoltRoute API")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
		SampleRatio:    cfg.TelemetrySampleRatio,
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

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize HTTP metrics
	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Provider health registry and call metrics, shared by every service
	registry := fallback.NewRegistry()
	providerMetrics, err := fallback.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	// Initialize provider clients. Each one is optional: a missing key or
	// endpoint leaves that concern on its local fallback.
	var vehicleSource catalog.VehicleSource
	if cfg.ChargetripClientID != "" && cfg.ChargetripAppID != "" {
		vehicleSource = chargetrip.NewClient(chargetrip.ClientConfig{
			ClientID: cfg.ChargetripClientID,
			AppID:    cfg.ChargetripAppID,
			BaseURL:  cfg.ChargetripBaseURL,
			Timeout:  cfg.ProviderTimeout,
			Logger:   log,
		})
		log.Info().Msg("Chargetrip vehicle directory configured")
	} else {
		log.Warn().Msg("Chargetrip not configured - vehicle catalog uses built-in dataset")
	}

	citySource := geogouv.NewClient(geogouv.ClientConfig{
		BaseURL:       cfg.GeoGouvBaseURL,
		MinPopulation: cfg.GeoGouvMinPopulation,
		Logger:        log,
	})

	var routeProvider route.Provider
	if cfg.ORSAPIKey != "" {
		routeProvider = openrouteservice.NewClient(openrouteservice.ClientConfig{
			APIKey:  cfg.ORSAPIKey,
			BaseURL: cfg.ORSBaseURL,
			Timeout: cfg.ProviderTimeout,
			Logger:  log,
		})
		log.Info().Msg("OpenRouteService routing configured")
	} else {
		log.Warn().Msg("ORS_API_KEY not set - routes use the geometric estimate")
	}

	var calcClient trip.CalcClient
	if cfg.SOAPEndpoint != "" {
		calcClient = soapcalc.NewClient(soapcalc.ClientConfig{
			Endpoint: cfg.SOAPEndpoint,
			Timeout:  cfg.ProviderTimeout,
			Logger:   log,
		})
		log.Info().Msg("SOAP calculation service configured")
	} else {
		log.Warn().Msg("SOAP_ENDPOINT not set - calculations run locally")
	}

	stationDirectory := irve.NewClient(irve.ClientConfig{
		BaseURL: cfg.IRVEBaseURL,
		Timeout: cfg.ProviderTimeout,
		Logger:  log,
	})

	// Initialize domain services
	catalogService := catalog.NewService(catalog.ServiceConfig{
		Vehicles: vehicleSource,
		Cities:   citySource,
		Logger:   log,
		Registry: registry,
		Metrics:  providerMetrics,
	})
	routeService := route.NewService(route.ServiceConfig{
		Provider: routeProvider,
		Logger:   log,
		Registry: registry,
		Metrics:  providerMetrics,
	})
	calculator := trip.NewCalculator(trip.CalculatorConfig{
		Client:   calcClient,
		Logger:   log,
		Registry: registry,
		Metrics:  providerMetrics,
	})
	stationService := station.NewService(station.ServiceConfig{
		Directory: stationDirectory,
		Logger:    log,
		Registry:  registry,
		Metrics:   providerMetrics,
	})
	tripService := trip.NewService(trip.ServiceConfig{
		Catalog:    catalogService,
		Routes:     routeService,
		Calculator: calculator,
		Stations:   stationService,
		Logger:     log,
	})
	log.Info().Msg("trip planning services initialized")

	// Optionally issue the first catalog fetch now rather than on the first
	// request. The caches keep whatever this resolves for the process lifetime.
	if cfg.CatalogWarmup {
		go func() {
			_, vehicleSrc := catalogService.Vehicles(ctx)
			_, citySrc := catalogService.Cities(ctx)
			log.Info().
				Str("vehicles_source", string(vehicleSrc)).
				Str("cities_source", string(citySrc)).
				Msg("catalogs warmed")
		}()
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     httpMetrics,
		Catalog:     catalogService,
		Trips:       tripService,
		Registry:    registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

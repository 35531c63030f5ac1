// Package config loads VoltRoute API configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full runtime configuration of the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string

	// Environment is the deployment environment (development, production).
	Environment string

	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string

	// ORSBaseURL and ORSAPIKey configure the OpenRouteService routing
	// provider. An empty key leaves routing on the geometric estimate.
	ORSBaseURL string
	ORSAPIKey  string

	// ChargetripBaseURL, ChargetripClientID and ChargetripAppID configure
	// the Chargetrip vehicle directory.
	ChargetripBaseURL  string
	ChargetripClientID string
	ChargetripAppID    string

	// GeoGouvBaseURL configures the French government communes directory.
	GeoGouvBaseURL string

	// GeoGouvMinPopulation is the smallest commune population kept in the
	// city directory.
	GeoGouvMinPopulation int

	// IRVEBaseURL configures the public charging station directory.
	IRVEBaseURL string

	// SOAPEndpoint configures the remote travel calculation service.
	// Empty leaves calculation on the local formula.
	SOAPEndpoint string

	// ProviderTimeout bounds each remote provider call.
	ProviderTimeout time.Duration

	// CatalogWarmup triggers the first catalog fetch at startup instead of
	// on the first request.
	CatalogWarmup bool

	// OTLPEndpoint is the OpenTelemetry collector address.
	OTLPEndpoint string

	// TelemetryEnabled toggles OTLP export.
	TelemetryEnabled bool

	// TelemetrySampleRatio is the fraction of root traces to sample.
	TelemetrySampleRatio float64
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ORSBaseURL:           getEnv("ORS_BASE_URL", ""),
		ORSAPIKey:            getEnv("ORS_API_KEY", ""),
		ChargetripBaseURL:    getEnv("CHARGETRIP_BASE_URL", ""),
		ChargetripClientID:   getEnv("CHARGETRIP_CLIENT_ID", ""),
		ChargetripAppID:      getEnv("CHARGETRIP_APP_ID", ""),
		GeoGouvBaseURL:       getEnv("GEO_GOUV_BASE_URL", ""),
		GeoGouvMinPopulation: getInt("GEO_GOUV_MIN_POPULATION", 100000),
		IRVEBaseURL:          getEnv("IRVE_BASE_URL", ""),
		SOAPEndpoint:         getEnv("SOAP_ENDPOINT", ""),
		ProviderTimeout:      getDuration("PROVIDER_TIMEOUT", 10*time.Second),
		CatalogWarmup:        getBool("CATALOG_WARMUP", false),
		OTLPEndpoint:         getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:     getBool("OTEL_ENABLED", false),
		TelemetrySampleRatio: getFloat("OTEL_SAMPLE_RATIO", 1.0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

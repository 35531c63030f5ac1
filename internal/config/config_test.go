package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voltroute/voltroute/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 100000, cfg.GeoGouvMinPopulation)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.False(t, cfg.TelemetryEnabled)
	assert.Equal(t, 1.0, cfg.TelemetrySampleRatio)
	assert.Empty(t, cfg.ORSAPIKey)
	assert.Empty(t, cfg.SOAPEndpoint)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ORS_API_KEY", "ors-key")
	t.Setenv("CHARGETRIP_CLIENT_ID", "client-id")
	t.Setenv("CHARGETRIP_APP_ID", "app-id")
	t.Setenv("SOAP_ENDPOINT", "http://calc.example.com/soap")
	t.Setenv("GEO_GOUV_MIN_POPULATION", "50000")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "ors-key", cfg.ORSAPIKey)
	assert.Equal(t, "client-id", cfg.ChargetripClientID)
	assert.Equal(t, "app-id", cfg.ChargetripAppID)
	assert.Equal(t, "http://calc.example.com/soap", cfg.SOAPEndpoint)
	assert.Equal(t, 50000, cfg.GeoGouvMinPopulation)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.True(t, cfg.TelemetryEnabled)
	assert.Equal(t, 0.25, cfg.TelemetrySampleRatio)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	t.Setenv("OTEL_ENABLED", "maybe")
	t.Setenv("OTEL_SAMPLE_RATIO", "half")
	t.Setenv("GEO_GOUV_MIN_POPULATION", "many")

	cfg := config.Load()

	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.False(t, cfg.TelemetryEnabled)
	assert.Equal(t, 1.0, cfg.TelemetrySampleRatio)
	assert.Equal(t, 100000, cfg.GeoGouvMinPopulation)
}

func TestLoad_NegativeTimeoutFallsBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "-3s")

	cfg := config.Load()

	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
}

package fallback

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/voltroute/voltroute/internal/provider/fallback"

// Metrics holds the OpenTelemetry instruments for remote provider calls.
type Metrics struct {
	callDuration  metric.Float64Histogram
	callTotal     metric.Int64Counter
	fallbackTotal metric.Int64Counter
}

// NewMetrics creates the provider-call instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	callDuration, err := meter.Float64Histogram(
		"provider.request.duration",
		metric.WithDescription("Duration of remote provider calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	callTotal, err := meter.Int64Counter(
		"provider.request.total",
		metric.WithDescription("Total number of remote provider calls"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	fallbackTotal, err := meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Number of results served from the local fallback"),
		metric.WithUnit("{result}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		callDuration:  callDuration,
		callTotal:     callTotal,
		fallbackTotal: fallbackTotal,
	}, nil
}

// RecordCall records one primary call outcome.
func (m *Metrics) RecordCall(provider string, elapsed time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("provider.name", provider),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	// Background context: the request context may already be canceled when
	// the failed call is recorded.
	ctx := context.Background()
	m.callDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
	m.callTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		m.fallbackTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

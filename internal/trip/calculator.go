package trip

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/provider/fallback"
)

// CalcClient defines the interface for the remote trip calculation service.
type CalcClient interface {
	// CalculateStops returns the number of charging stops for a trip.
	CalculateStops(ctx context.Context, distanceKm, autonomyKm float64) (int, error)

	// CalculateTravelTime returns the total trip duration in hours.
	CalculateTravelTime(ctx context.Context, distanceKm, autonomyKm, chargeTimeH float64) (float64, error)

	// Name returns the provider name for logging.
	Name() string
}

// Calculation is the outcome of the stop and duration arithmetic.
type Calculation struct {
	Stops      int
	TotalTimeH float64
}

// CalculatorConfig holds configuration for the calculator.
type CalculatorConfig struct {
	// Client is the remote calculation service (optional). Without one,
	// every calculation runs locally.
	Client CalcClient

	// Logger for calculator operations.
	Logger zerolog.Logger

	// Registry tracks provider health (optional).
	Registry *fallback.Registry

	// Metrics records provider call outcomes (optional).
	Metrics *fallback.Metrics
}

// Calculator computes charging stops and trip duration, preferring the remote
// service and falling back to the identical local arithmetic.
type Calculator struct {
	client   CalcClient
	logger   zerolog.Logger
	registry *fallback.Registry
	metrics  *fallback.Metrics
}

// NewCalculator creates a new calculator.
func NewCalculator(cfg CalculatorConfig) *Calculator {
	return &Calculator{
		client:   cfg.Client,
		logger:   cfg.Logger,
		registry: cfg.Registry,
		metrics:  cfg.Metrics,
	}
}

// Calculate computes the stops and total duration for a trip. Inputs are
// validated before any remote call: a non-positive autonomy or negative
// distance fails immediately with ErrInvalidInput.
func (c *Calculator) Calculate(ctx context.Context, distanceKm, autonomyKm, chargeTimeH float64) (Calculation, fallback.Source, error) {
	if autonomyKm <= 0 || distanceKm < 0 || chargeTimeH < 0 {
		return Calculation{}, fallback.SourceFallback, ErrInvalidInput
	}

	result, src := fallback.Resolve(ctx, fallback.Config{
		Provider: c.clientName(),
		Logger:   c.logger,
		Registry: c.registry,
		Metrics:  c.metrics,
	}, func(ctx context.Context) (Calculation, error) {
		return c.calculateRemote(ctx, distanceKm, autonomyKm, chargeTimeH)
	}, func() Calculation {
		return Calculation{
			Stops:      RequiredStops(distanceKm, autonomyKm),
			TotalTimeH: TotalTravelTime(distanceKm, autonomyKm, chargeTimeH),
		}
	})

	return result, src, nil
}

// calculateRemote runs both service methods. A partial answer is useless, so
// either failing degrades the whole calculation.
func (c *Calculator) calculateRemote(ctx context.Context, distanceKm, autonomyKm, chargeTimeH float64) (Calculation, error) {
	if c.client == nil {
		return Calculation{}, errors.New("no calculation service configured")
	}

	stops, err := c.client.CalculateStops(ctx, distanceKm, autonomyKm)
	if err != nil {
		return Calculation{}, err
	}

	total, err := c.client.CalculateTravelTime(ctx, distanceKm, autonomyKm, chargeTimeH)
	if err != nil {
		return Calculation{}, err
	}

	return Calculation{Stops: stops, TotalTimeH: total}, nil
}

func (c *Calculator) clientName() string {
	if c.client == nil {
		return "calculation"
	}
	return c.client.Name()
}

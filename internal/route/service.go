package route

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/provider/fallback"
	"github.com/voltroute/voltroute/pkg/geo"
)

// ServiceConfig holds configuration for the route service.
type ServiceConfig struct {
	// Provider is the driving route provider (optional). Without one, every
	// resolution uses the geometric estimate.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Registry tracks provider health (optional).
	Registry *fallback.Registry

	// Metrics records provider call outcomes (optional).
	Metrics *fallback.Metrics
}

// Service resolves driving routes. Resolution never fails: when the provider
// errors or times out, the caller gets an estimate derived from the
// great-circle distance, tagged with its source.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	registry *fallback.Registry
	metrics  *fallback.Metrics
}

// NewService creates a new route service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		registry: cfg.Registry,
		metrics:  cfg.Metrics,
	}
}

// Resolve computes a driving route between two points, reporting whether the
// result came from the provider or the geometric estimate.
func (s *Service) Resolve(ctx context.Context, from, to geo.Point) (Route, fallback.Source) {
	return fallback.Resolve(ctx, fallback.Config{
		Provider: s.providerName(),
		Logger:   s.logger,
		Registry: s.registry,
		Metrics:  s.metrics,
	}, func(ctx context.Context) (Route, error) {
		if s.provider == nil {
			return Route{}, ErrProviderUnavailable
		}
		r, err := s.provider.GetRoute(ctx, from, to)
		if err != nil {
			return Route{}, err
		}
		return *r, nil
	}, func() Route {
		return Estimate(from, to)
	})
}

// Estimate derives a route from the great-circle distance between two points.
// Estimates carry no path geometry: a straight line between the endpoints
// would be misleading on a map, so Geometry stays empty.
func Estimate(from, to geo.Point) Route {
	distance := geo.Haversine(from, to) * RoadFactor
	distance = math.Round(distance*10) / 10

	duration := math.Round(distance/AverageSpeedKmh*100) / 100

	return Route{
		DistanceKm: distance,
		DurationH:  duration,
	}
}

func (s *Service) providerName() string {
	if s.provider == nil {
		return "routing"
	}
	return s.provider.Name()
}

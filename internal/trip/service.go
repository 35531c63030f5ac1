package trip

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/catalog"
	"github.com/voltroute/voltroute/internal/route"
	"github.com/voltroute/voltroute/internal/station"
)

// ServiceConfig holds configuration for the trip service.
type ServiceConfig struct {
	// Catalog resolves vehicles and cities (required).
	Catalog *catalog.Service

	// Routes resolves driving routes (required).
	Routes *route.Service

	// Calculator computes stops and durations (required).
	Calculator *Calculator

	// Stations places charging stations (required).
	Stations *station.Service

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service plans road trips. Lookups can fail with not-found or validation
// errors; once the vehicle and cities are known, planning always produces a
// result, degrading sub-results to estimates as providers fail.
type Service struct {
	catalog    *catalog.Service
	routes     *route.Service
	calculator *Calculator
	stations   *station.Service
	logger     zerolog.Logger
}

// NewService creates a new trip service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		catalog:    cfg.Catalog,
		routes:     cfg.Routes,
		calculator: cfg.Calculator,
		stations:   cfg.Stations,
		logger:     cfg.Logger,
	}
}

// Plan computes a full trip plan for a vehicle between two cities.
func (s *Service) Plan(ctx context.Context, vehicleID, departure, destination string) (*Plan, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	departure = strings.TrimSpace(departure)
	destination = strings.TrimSpace(destination)

	if vehicleID == "" || departure == "" || destination == "" {
		return nil, ErrInvalidInput
	}

	vehicle, vehicleSrc, err := s.catalog.VehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	from, citySrc, err := s.catalog.CityByName(ctx, departure)
	if err != nil {
		return nil, err
	}
	to, _, err := s.catalog.CityByName(ctx, destination)
	if err != nil {
		return nil, err
	}

	// Planning between a city and itself is a valid degenerate trip: zero
	// distance, zero stops, zero time.
	r, routeSrc := s.routes.Resolve(ctx, from.Point(), to.Point())

	calc, calcSrc, err := s.calculator.Calculate(ctx, r.DistanceKm, float64(vehicle.AutonomyKm), vehicle.ChargeTimeH)
	if err != nil {
		return nil, err
	}

	stations, stationSrc := s.stations.Place(ctx, from.Point(), to.Point(), calc.Stops)

	drivingTime := round2(r.DistanceKm / route.AverageSpeedKmh)
	chargingTime := round2(float64(calc.Stops) * vehicle.ChargeTimeH)

	plan := &Plan{
		Vehicle:       vehicle,
		Departure:     from,
		Destination:   to,
		DistanceKm:    r.DistanceKm,
		Stops:         calc.Stops,
		DrivingTimeH:  drivingTime,
		ChargingTimeH: chargingTime,
		TotalTimeH:    round2(calc.TotalTimeH),
		Geometry:      r.Geometry,
		Stations:      stations,
		Sources: Sources{
			Vehicles:    vehicleSrc,
			Cities:      citySrc,
			Route:       routeSrc,
			Calculation: calcSrc,
			Stations:    stationSrc,
		},
	}

	s.logger.Info().
		Str("vehicle", vehicle.ID).
		Str("departure", from.Key).
		Str("destination", to.Key).
		Float64("distance_km", plan.DistanceKm).
		Int("stops", plan.Stops).
		Float64("total_time_h", plan.TotalTimeH).
		Str("overall_source", string(plan.Sources.Overall())).
		Msg("trip planned")

	return plan, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

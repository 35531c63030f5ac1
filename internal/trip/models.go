// Package trip plans electric vehicle road trips between French cities,
// composing the vehicle catalog, route resolution, charge calculation and
// station placement.
package trip

import (
	"errors"

	"github.com/voltroute/voltroute/internal/catalog"
	"github.com/voltroute/voltroute/internal/provider/fallback"
	"github.com/voltroute/voltroute/internal/station"
)

// Sentinel errors for trip planning.
var (
	// ErrInvalidInput indicates a missing request parameter.
	ErrInvalidInput = errors.New("invalid trip input")

	// ErrRouteUnavailable indicates no usable route between the cities.
	// Route resolution always produces at least an estimate, so this is
	// reserved and not returned in normal operation.
	ErrRouteUnavailable = errors.New("route unavailable")
)

// Sources records where each part of a plan came from.
type Sources struct {
	Vehicles    fallback.Source `json:"vehicles"`
	Cities      fallback.Source `json:"cities"`
	Route       fallback.Source `json:"route"`
	Calculation fallback.Source `json:"calculation"`
	Stations    fallback.Source `json:"stations"`
}

// Overall is fallback when any part of the plan was degraded.
func (s Sources) Overall() fallback.Source {
	return fallback.Combine(s.Vehicles, s.Cities, s.Route, s.Calculation, s.Stations)
}

// Plan is a fully resolved road trip.
type Plan struct {
	Vehicle     catalog.Vehicle
	Departure   catalog.City
	Destination catalog.City

	// DistanceKm is the road distance, rounded to one decimal.
	DistanceKm float64

	// Stops is the number of charging stops required.
	Stops int

	// DrivingTimeH is the time spent driving, in hours.
	DrivingTimeH float64

	// ChargingTimeH is the time spent charging, in hours.
	ChargingTimeH float64

	// TotalTimeH is the full trip duration, in hours.
	TotalTimeH float64

	// Geometry is the route shape as an encoded polyline.
	Geometry string

	// Stations holds one charging station per stop, in route order.
	Stations []station.Station

	// Sources records the provenance of each sub-result.
	Sources Sources
}

// Package route resolves driving routes between cities, with a geometric
// estimate standing in when the routing provider is unreachable.
package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/voltroute/voltroute/pkg/geo"
)

const (
	// RoadFactor converts a great-circle distance into an estimated road
	// distance. French intercity roads run about 30% longer than the
	// straight line.
	RoadFactor = 1.3

	// AverageSpeedKmh is the assumed cruising speed for duration estimates.
	AverageSpeedKmh = 90.0
)

// Sentinel errors for route operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no drivable route exists between the points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates the coordinates are out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the interface for driving route providers.
type Provider interface {
	// GetRoute computes a driving route between two points.
	GetRoute(ctx context.Context, from, to geo.Point) (*Route, error)

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Route is a resolved driving route.
type Route struct {
	// DistanceKm is the road distance, rounded to one decimal.
	DistanceKm float64

	// DurationH is the driving duration in hours, rounded to two decimals.
	DurationH float64

	// Geometry is the route shape as an encoded polyline. Estimated routes
	// carry none.
	Geometry string
}

// Error wraps provider failures with context for logging and API mapping.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Package station finds charging stations along a planned route.
package station

import (
	"context"
	"errors"

	"github.com/voltroute/voltroute/pkg/geo"
)

// ErrNoStationFound indicates the directory has no station near a waypoint.
var ErrNoStationFound = errors.New("no charging station found near waypoint")

// Directory defines the interface for charging station directories.
type Directory interface {
	// FindNearest returns the closest station within radiusKm of p.
	FindNearest(ctx context.Context, p geo.Point, radiusKm float64) (*Station, error)

	// Name returns the provider name for logging.
	Name() string
}

// Station is a charging station assigned to a stop on a trip.
type Station struct {
	ID       string
	Name     string
	Address  string
	Operator string
	PlugType string
	Lat      float64
	Lon      float64

	// Power is the maximum charging power as published by the directory.
	// The registry mixes units and formats, so it stays an opaque string.
	Power string

	// Available reports whether the station is usable for a stop. Directory
	// hits and synthesized placeholders are both offered as available.
	Available bool

	// StopIndex is the 1-based position of the stop along the route.
	StopIndex int

	// DistanceFromStartKm is the estimated road distance from the departure
	// city, rounded to one decimal.
	DistanceFromStartKm float64

	// Synthetic marks stations invented when the directory had no answer.
	Synthetic bool
}

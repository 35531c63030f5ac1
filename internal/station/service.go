package station

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/provider/fallback"
	"github.com/voltroute/voltroute/internal/route"
	"github.com/voltroute/voltroute/pkg/geo"
)

const (
	// SearchRadiusKm bounds the directory lookup around each waypoint.
	SearchRadiusKm = 20.0

	// syntheticPower is the assumed power rating of an invented station.
	syntheticPower = "50 kW"
)

// ServiceConfig holds configuration for the station service.
type ServiceConfig struct {
	// Directory is the charging station directory (optional). Without one,
	// every stop gets a synthetic station.
	Directory Directory

	// Logger for service operations.
	Logger zerolog.Logger

	// Registry tracks provider health (optional).
	Registry *fallback.Registry

	// Metrics records provider call outcomes (optional).
	Metrics *fallback.Metrics
}

// Service assigns a charging station to each stop on a trip. Placement never
// fails: waypoints the directory cannot serve get a synthetic station at the
// waypoint itself.
type Service struct {
	directory Directory
	logger    zerolog.Logger
	registry  *fallback.Registry
	metrics   *fallback.Metrics
}

// NewService creates a new station service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		directory: cfg.Directory,
		logger:    cfg.Logger,
		registry:  cfg.Registry,
		metrics:   cfg.Metrics,
	}
}

// Place returns one station per stop, spaced evenly along the straight line
// from departure to destination. The returned slice always has exactly stops
// entries, in route order. The source is fallback when any stop had to be
// synthesized.
func (s *Service) Place(ctx context.Context, from, to geo.Point, stops int) ([]Station, fallback.Source) {
	if stops <= 0 {
		return []Station{}, fallback.SourcePrimary
	}

	stations := make([]Station, 0, stops)
	sources := make([]fallback.Source, 0, stops)

	for i := 1; i <= stops; i++ {
		ratio := float64(i) / float64(stops+1)
		waypoint := geo.Interpolate(from, to, ratio)

		index := i
		st, src := fallback.Resolve(ctx, fallback.Config{
			Provider: s.directoryName(),
			Logger:   s.logger,
			Registry: s.registry,
			Metrics:  s.metrics,
		}, func(ctx context.Context) (Station, error) {
			if s.directory == nil {
				return Station{}, ErrNoStationFound
			}
			found, err := s.directory.FindNearest(ctx, waypoint, SearchRadiusKm)
			if err != nil {
				return Station{}, err
			}
			return *found, nil
		}, func() Station {
			return syntheticStation(index, waypoint)
		})

		st.StopIndex = index
		st.DistanceFromStartKm = distanceFromStart(from, waypoint)

		stations = append(stations, st)
		sources = append(sources, src)
	}

	return stations, fallback.Combine(sources...)
}

// syntheticStation invents a plausible station at the waypoint itself.
func syntheticStation(index int, p geo.Point) Station {
	return Station{
		ID:        fmt.Sprintf("synthetic-%d", index),
		Name:      "Charging station",
		Address:   "Motorway services",
		Power:     syntheticPower,
		PlugType:  "Type 2 CCS",
		Lat:       p.Lat,
		Lon:       p.Lon,
		Available: true,
		Synthetic: true,
	}
}

// distanceFromStart estimates the road distance from departure to a waypoint.
func distanceFromStart(from, waypoint geo.Point) float64 {
	d := geo.Haversine(from, waypoint) * route.RoadFactor
	return math.Round(d*10) / 10
}

func (s *Service) directoryName() string {
	if s.directory == nil {
		return "stations"
	}
	return s.directory.Name()
}

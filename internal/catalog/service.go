package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/provider/fallback"
)

// cityFetchTimeout is longer than the default provider timeout because the
// commune listing is a large unpaginated payload.
const cityFetchTimeout = 20 * time.Second

// Sentinel errors for catalog lookups.
var (
	// ErrVehicleNotFound is returned when no vehicle matches the given ID.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrCityNotFound is returned when no city matches the given name.
	ErrCityNotFound = errors.New("city not found")
)

// VehicleSource fetches the vehicle catalog from a remote directory.
type VehicleSource interface {
	// FetchVehicles returns the available vehicle models.
	FetchVehicles(ctx context.Context) ([]Vehicle, error)

	// Name returns the provider name for logging.
	Name() string
}

// CitySource fetches the city directory from a remote provider.
type CitySource interface {
	// FetchCities returns cities keyed by normalized name.
	FetchCities(ctx context.Context) (map[string]City, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the catalog service.
type ServiceConfig struct {
	// Vehicles is the remote vehicle directory (optional).
	Vehicles VehicleSource

	// Cities is the remote city directory (optional).
	Cities CitySource

	// Logger for service operations.
	Logger zerolog.Logger

	// Registry tracks provider health (optional).
	Registry *fallback.Registry

	// Metrics records provider call outcomes (optional).
	Metrics *fallback.Metrics
}

// Service provides the vehicle and city catalogs.
//
// Each catalog is resolved at most once per process: the first call attempts
// the remote source and the outcome, remote or static, is kept for the
// lifetime of the service. Concurrent first calls may each hit the remote
// source; the last store wins and later calls see a single stable snapshot.
type Service struct {
	vehicles VehicleSource
	cities   CitySource
	logger   zerolog.Logger
	registry *fallback.Registry
	metrics  *fallback.Metrics

	mu            sync.RWMutex
	vehicleCache  []Vehicle
	vehicleSource fallback.Source
	cityCache     map[string]City
	citySource    fallback.Source
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		vehicles: cfg.Vehicles,
		cities:   cfg.Cities,
		logger:   cfg.Logger,
		registry: cfg.Registry,
		metrics:  cfg.Metrics,
	}
}

// Vehicles returns the vehicle catalog and the source it was resolved from.
// The returned slice is the cached snapshot and must not be mutated.
func (s *Service) Vehicles(ctx context.Context) ([]Vehicle, fallback.Source) {
	s.mu.RLock()
	if s.vehicleCache != nil {
		cached, src := s.vehicleCache, s.vehicleSource
		s.mu.RUnlock()
		return cached, src
	}
	s.mu.RUnlock()

	vehicles, src := fallback.Resolve(ctx, fallback.Config{
		Provider: s.vehicleProviderName(),
		Logger:   s.logger,
		Registry: s.registry,
		Metrics:  s.metrics,
	}, s.fetchVehicles, fallbackVehicles)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vehicleCache == nil {
		s.vehicleCache = vehicles
		s.vehicleSource = src
	}
	return s.vehicleCache, s.vehicleSource
}

// VehicleByID returns a single vehicle from the catalog.
func (s *Service) VehicleByID(ctx context.Context, id string) (Vehicle, fallback.Source, error) {
	vehicles, src := s.Vehicles(ctx)
	for _, v := range vehicles {
		if v.ID == id {
			return v, src, nil
		}
	}
	return Vehicle{}, src, ErrVehicleNotFound
}

// Cities returns the city directory keyed by normalized name, and the source
// it was resolved from. The returned map is the cached snapshot and must not
// be mutated.
func (s *Service) Cities(ctx context.Context) (map[string]City, fallback.Source) {
	s.mu.RLock()
	if s.cityCache != nil {
		cached, src := s.cityCache, s.citySource
		s.mu.RUnlock()
		return cached, src
	}
	s.mu.RUnlock()

	cities, src := fallback.Resolve(ctx, fallback.Config{
		Provider: s.cityProviderName(),
		Timeout:  cityFetchTimeout,
		Logger:   s.logger,
		Registry: s.registry,
		Metrics:  s.metrics,
	}, s.fetchCities, fallbackCities)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cityCache == nil {
		s.cityCache = cities
		s.citySource = src
	}
	return s.cityCache, s.citySource
}

// CityByName returns a single city, matching on the normalized name.
func (s *Service) CityByName(ctx context.Context, name string) (City, fallback.Source, error) {
	cities, src := s.Cities(ctx)
	city, ok := cities[CityKey(name)]
	if !ok {
		return City{}, src, ErrCityNotFound
	}
	return city, src, nil
}

func (s *Service) fetchVehicles(ctx context.Context) ([]Vehicle, error) {
	if s.vehicles == nil {
		return nil, errors.New("no vehicle source configured")
	}
	return s.vehicles.FetchVehicles(ctx)
}

func (s *Service) fetchCities(ctx context.Context) (map[string]City, error) {
	if s.cities == nil {
		return nil, errors.New("no city source configured")
	}
	return s.cities.FetchCities(ctx)
}

func (s *Service) vehicleProviderName() string {
	if s.vehicles == nil {
		return "vehicles"
	}
	return s.vehicles.Name()
}

func (s *Service) cityProviderName() string {
	if s.cities == nil {
		return "cities"
	}
	return s.cities.Name()
}

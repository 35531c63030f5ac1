package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltroute/voltroute/internal/api"
	"github.com/voltroute/voltroute/internal/api/models"
	"github.com/voltroute/voltroute/internal/catalog"
	"github.com/voltroute/voltroute/internal/provider/fallback"
	"github.com/voltroute/voltroute/internal/route"
	"github.com/voltroute/voltroute/internal/station"
	"github.com/voltroute/voltroute/internal/trip"
)

// newTestRouter wires a router with no remote providers configured, so every
// sub-result resolves from the built-in fallback datasets. That keeps the
// tests deterministic end to end.
func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	registry := fallback.NewRegistry()

	catalogSvc := catalog.NewService(catalog.ServiceConfig{
		Logger:   logger,
		Registry: registry,
	})
	routeSvc := route.NewService(route.ServiceConfig{
		Logger:   logger,
		Registry: registry,
	})
	calculator := trip.NewCalculator(trip.CalculatorConfig{
		Logger:   logger,
		Registry: registry,
	})
	stationSvc := station.NewService(station.ServiceConfig{
		Logger:   logger,
		Registry: registry,
	})
	tripSvc := trip.NewService(trip.ServiceConfig{
		Catalog:    catalogSvc,
		Routes:     routeSvc,
		Calculator: calculator,
		Stations:   stationSvc,
		Logger:     logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "2026-01-01T00:00:00Z",
		Logger:    logger,
		Catalog:   catalogSvc,
		Trips:     tripSvc,
		Registry:  registry,
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.NotEmpty(t, health.Time)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	// Trigger a plan first so the providers show up in the registry.
	planBody, _ := json.Marshal(models.TripPlanRequest{
		VehicleID:   "1",
		Departure:   "Paris",
		Destination: "Lyon",
	})
	planReq := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(planBody))
	planReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), planReq)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	// Every provider failed (none configured), so the system is degraded
	// while trips still plan from fallback data.
	assert.Equal(t, models.HealthStatusDegraded, status.Status)
	assert.NotEmpty(t, status.Providers)
	for _, p := range status.Providers {
		assert.Equal(t, models.HealthStatusDegraded, p.Status)
		assert.NotZero(t, p.Failures)
	}
}

func TestRouter_ServiceInfo(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/info", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var info models.ServiceInfo
	err := json.Unmarshal(w.Body.Bytes(), &info)
	require.NoError(t, err)

	assert.Equal(t, "voltroute-api", info.Name)
	assert.Equal(t, "test", info.Version)
}

func TestRouter_ListVehicles(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.VehicleList
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)

	assert.Len(t, list.Vehicles, 10)
	assert.Equal(t, 10, list.Count)
	assert.Equal(t, "fallback", list.Source)
	assert.Equal(t, "Tesla Model 3 Long Range", list.Vehicles[0].Name)
}

func TestRouter_ListVehicles_Filtered(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles?brand=tesla&min_autonomy=400", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.VehicleList
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)

	require.Len(t, list.Vehicles, 1)
	assert.Equal(t, "Tesla", list.Vehicles[0].Brand)
	assert.GreaterOrEqual(t, list.Vehicles[0].AutonomyKm, 400)
}

func TestRouter_ListVehicles_BadMinAutonomy(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles?min_autonomy=lots", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_ListCities(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/cities", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.CityList
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)

	require.Len(t, list.Cities, 15)
	assert.Equal(t, "fallback", list.Source)

	// Ordered by population descending.
	assert.Equal(t, "Paris", list.Cities[0].Name)
	assert.Equal(t, "Marseille", list.Cities[1].Name)
	for i := 1; i < len(list.Cities); i++ {
		assert.GreaterOrEqual(t, list.Cities[i-1].Population, list.Cities[i].Population)
	}
}

func TestRouter_PlanTrip(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.TripPlanRequest{
		VehicleID:   "1",
		Departure:   "Paris",
		Destination: "Marseille",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var plan models.TripPlan
	err := json.Unmarshal(w.Body.Bytes(), &plan)
	require.NoError(t, err)

	assert.Equal(t, "Tesla Model 3 Long Range", plan.Vehicle.Name)
	assert.Equal(t, "Paris", plan.Departure.Name)
	assert.Equal(t, "Marseille", plan.Destination.Name)
	assert.Greater(t, plan.DistanceKm, 700.0)
	assert.Equal(t, 1, plan.Stops)
	require.Len(t, plan.Stations, 1)
	assert.True(t, plan.Stations[0].Synthetic)
	assert.True(t, plan.Stations[0].Available)
	assert.Equal(t, "50 kW", plan.Stations[0].Power)
	// Estimated routes carry no path geometry.
	assert.Empty(t, plan.Geometry)
	assert.Greater(t, plan.TotalTimeH, plan.DrivingTimeH)
	assert.Equal(t, "fallback", plan.Sources.Route)
	assert.Equal(t, "fallback", plan.Sources.Overall)
}

func TestRouter_PlanTrip_MissingFields(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.TripPlanRequest{Departure: "Paris"})

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.NotEmpty(t, problem.TraceID)
	assert.Len(t, problem.Errors, 2)
}

func TestRouter_PlanTrip_InvalidJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_PlanTrip_UnknownVehicle(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.TripPlanRequest{
		VehicleID:   "unknown",
		Departure:   "Paris",
		Destination: "Lyon",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeNotFound, problem.Type)
}

func TestRouter_PlanTrip_UnknownCity(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.TripPlanRequest{
		VehicleID:   "1",
		Departure:   "Paris",
		Destination: "Atlantis",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_PlanTrip_SameCity(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.TripPlanRequest{
		VehicleID:   "1",
		Departure:   "Paris",
		Destination: "paris",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// A trip from a city to itself is a valid degenerate plan.
	assert.Equal(t, http.StatusOK, w.Code)

	var plan models.TripPlan
	err := json.Unmarshal(w.Body.Bytes(), &plan)
	require.NoError(t, err)

	assert.Equal(t, 0.0, plan.DistanceKm)
	assert.Equal(t, 0, plan.Stops)
	assert.Equal(t, 0.0, plan.TotalTimeH)
	assert.Empty(t, plan.Stations)
}

func TestRouter_PlanTrip_WrongContentType(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader([]byte("vehicleId=1")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_RequestID_Generated(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID)
	assert.Contains(t, requestID, "req_")
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "custom_request_id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "custom_request_id", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

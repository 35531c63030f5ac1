package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voltroute/voltroute/internal/api/models"
	"github.com/voltroute/voltroute/internal/api/response"
	"github.com/voltroute/voltroute/internal/catalog"
	"github.com/voltroute/voltroute/internal/trip"
)

// TripHandler handles trip planning endpoints.
type TripHandler struct {
	trips *trip.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

// PlanTrip handles POST /v1/trips:plan - plan a road trip between two cities.
func (h *TripHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var input models.TripPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	var fields []models.FieldError
	if input.VehicleID == "" {
		fields = append(fields, models.FieldError{Field: "vehicleId", Message: "required"})
	}
	if input.Departure == "" {
		fields = append(fields, models.FieldError{Field: "departure", Message: "required"})
	}
	if input.Destination == "" {
		fields = append(fields, models.FieldError{Field: "destination", Message: "required"})
	}
	if len(fields) > 0 {
		response.BadRequest(w, r, "missing required fields", fields)
		return
	}

	plan, err := h.trips.Plan(r.Context(), input.VehicleID, input.Departure, input.Destination)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toTripPlanModel(plan))
}

// writePlanError maps planning errors onto RFC7807 problem responses.
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, trip.ErrInvalidInput):
		response.BadRequest(w, r, "vehicleId, departure and destination are required", nil)
	case errors.Is(err, catalog.ErrVehicleNotFound):
		response.NotFound(w, r, "vehicle not found in the catalog")
	case errors.Is(err, catalog.ErrCityNotFound):
		response.NotFound(w, r, "city not found in the directory")
	case errors.Is(err, trip.ErrRouteUnavailable):
		response.ServiceUnavailable(w, r, "no usable route between the requested cities")
	default:
		response.InternalError(w, r, "trip planning failed")
	}
}

func toTripPlanModel(p *trip.Plan) models.TripPlan {
	out := models.TripPlan{
		Vehicle:       toVehicleModel(p.Vehicle),
		Departure:     toCityModel(p.Departure),
		Destination:   toCityModel(p.Destination),
		DistanceKm:    p.DistanceKm,
		Stops:         p.Stops,
		DrivingTimeH:  p.DrivingTimeH,
		ChargingTimeH: p.ChargingTimeH,
		TotalTimeH:    p.TotalTimeH,
		Geometry:      p.Geometry,
		Stations:      make([]models.ChargingStation, 0, len(p.Stations)),
		Sources: models.TripSources{
			Vehicles:    string(p.Sources.Vehicles),
			Cities:      string(p.Sources.Cities),
			Route:       string(p.Sources.Route),
			Calculation: string(p.Sources.Calculation),
			Stations:    string(p.Sources.Stations),
			Overall:     string(p.Sources.Overall()),
		},
	}

	for _, s := range p.Stations {
		out.Stations = append(out.Stations, models.ChargingStation{
			ID:                  s.ID,
			Name:                s.Name,
			Address:             s.Address,
			Operator:            s.Operator,
			Power:               s.Power,
			PlugType:            s.PlugType,
			Lat:                 s.Lat,
			Lon:                 s.Lon,
			StopIndex:           s.StopIndex,
			DistanceFromStartKm: s.DistanceFromStartKm,
			Available:           s.Available,
			Synthetic:           s.Synthetic,
		})
	}

	return out
}

package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/voltroute/voltroute/internal/api/models"
	"github.com/voltroute/voltroute/internal/api/response"
	"github.com/voltroute/voltroute/internal/catalog"
)

// CatalogHandler handles vehicle and city catalog endpoints.
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// ListVehicles handles GET /v1/vehicles - list the vehicle catalog.
// Supports optional filters: ?brand=tesla and ?min_autonomy=400.
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	var minAutonomy int
	if raw := r.URL.Query().Get("min_autonomy"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.BadRequest(w, r, "min_autonomy must be a non-negative integer", []models.FieldError{
				{Field: "min_autonomy", Message: "must be a non-negative integer"},
			})
			return
		}
		minAutonomy = v
	}
	brand := strings.TrimSpace(r.URL.Query().Get("brand"))

	vehicles, source := h.catalog.Vehicles(r.Context())

	list := models.VehicleList{
		Vehicles: make([]models.Vehicle, 0, len(vehicles)),
		Source:   string(source),
	}
	for _, v := range vehicles {
		if brand != "" && !strings.EqualFold(v.Brand, brand) {
			continue
		}
		if v.AutonomyKm < minAutonomy {
			continue
		}
		list.Vehicles = append(list.Vehicles, toVehicleModel(v))
	}
	list.Count = len(list.Vehicles)

	response.JSON(w, r, http.StatusOK, list)
}

// ListCities handles GET /v1/cities - list the city directory,
// ordered by population descending.
func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, source := h.catalog.Cities(r.Context())

	list := models.CityList{
		Cities: make([]models.City, 0, len(cities)),
		Source: string(source),
	}
	for _, c := range cities {
		list.Cities = append(list.Cities, toCityModel(c))
	}
	list.Count = len(list.Cities)
	sort.Slice(list.Cities, func(i, j int) bool {
		if list.Cities[i].Population != list.Cities[j].Population {
			return list.Cities[i].Population > list.Cities[j].Population
		}
		return list.Cities[i].Name < list.Cities[j].Name
	})

	response.JSON(w, r, http.StatusOK, list)
}

func toVehicleModel(v catalog.Vehicle) models.Vehicle {
	return models.Vehicle{
		ID:          v.ID,
		Name:        v.Name,
		Brand:       v.Brand,
		Model:       v.Model,
		AutonomyKm:  v.AutonomyKm,
		BatteryKWh:  v.BatteryKWh,
		ChargeTimeH: v.ChargeTimeH,
		Seats:       v.Seats,
	}
}

func toCityModel(c catalog.City) models.City {
	return models.City{
		Key:        c.Key,
		Name:       c.Name,
		Lat:        c.Lat,
		Lon:        c.Lon,
		Population: c.Population,
	}
}

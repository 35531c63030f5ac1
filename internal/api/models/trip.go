package models

// TripPlanRequest is the request body for POST /v1/trips:plan.
type TripPlanRequest struct {
	// VehicleID selects a vehicle from the catalog.
	VehicleID string `json:"vehicleId"`

	// Departure is the departure city name.
	Departure string `json:"departure"`

	// Destination is the destination city name.
	Destination string `json:"destination"`
}

// TripPlan is the response body for a planned trip.
type TripPlan struct {
	Vehicle     Vehicle `json:"vehicle"`
	Departure   City    `json:"departure"`
	Destination City    `json:"destination"`

	DistanceKm    float64 `json:"distanceKm"`
	Stops         int     `json:"stops"`
	DrivingTimeH  float64 `json:"drivingTimeH"`
	ChargingTimeH float64 `json:"chargingTimeH"`
	TotalTimeH    float64 `json:"totalTimeH"`

	// Geometry is the route shape as an encoded polyline.
	Geometry string `json:"geometry,omitempty"`

	Stations []ChargingStation `json:"stations"`

	Sources TripSources `json:"sources"`
}

// ChargingStation represents one charging stop on a planned trip. Power is
// passed through as published by the station directory, without a unit.
type ChargingStation struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Address             string  `json:"address,omitempty"`
	Operator            string  `json:"operator,omitempty"`
	Power               string  `json:"power"`
	PlugType            string  `json:"plugType,omitempty"`
	Lat                 float64 `json:"lat"`
	Lon                 float64 `json:"lon"`
	StopIndex           int     `json:"stopIndex"`
	DistanceFromStartKm float64 `json:"distanceFromStartKm"`
	Available           bool    `json:"available"`
	Synthetic           bool    `json:"synthetic"`
}

// TripSources reports the provenance of each part of a trip plan.
// Each value is "primary" or "fallback".
type TripSources struct {
	Vehicles    string `json:"vehicles"`
	Cities      string `json:"cities"`
	Route       string `json:"route"`
	Calculation string `json:"calculation"`
	Stations    string `json:"stations"`
	Overall     string `json:"overall"`
}

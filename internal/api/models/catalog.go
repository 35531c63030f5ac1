package models

// Vehicle represents an electric vehicle model in API responses.
type Vehicle struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	AutonomyKm  int     `json:"autonomyKm"`
	BatteryKWh  float64 `json:"batteryKwh"`
	ChargeTimeH float64 `json:"chargeTimeH"`
	Seats       int     `json:"seats"`
}

// VehicleList is the response for the vehicle catalog listing.
type VehicleList struct {
	Vehicles []Vehicle `json:"vehicles"`
	Count    int       `json:"count"`

	// Source reports whether the catalog came from the remote directory
	// ("primary") or the built-in dataset ("fallback").
	Source string `json:"source"`
}

// City represents a city in API responses.
type City struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Population int     `json:"population"`
}

// CityList is the response for the city directory listing.
type CityList struct {
	Cities []City `json:"cities"`
	Count  int    `json:"count"`

	// Source reports whether the directory came from the remote provider
	// ("primary") or the built-in dataset ("fallback").
	Source string `json:"source"`
}

package catalog

// Static datasets served when a remote directory is unavailable. The vehicle
// list mirrors a representative slice of the European EV market; the city
// table covers the fifteen largest French communes.

func fallbackVehicles() []Vehicle {
	return []Vehicle{
		{ID: "1", Name: "Tesla Model 3 Long Range", Brand: "Tesla", Model: "Model 3", AutonomyKm: 580, BatteryKWh: 75, ChargeTimeH: 0.5, Seats: 5},
		{ID: "2", Name: "Renault Zoe R135", Brand: "Renault", Model: "Zoe", AutonomyKm: 395, BatteryKWh: 52, ChargeTimeH: 0.75, Seats: 5},
		{ID: "3", Name: "Nissan Leaf e+ 62kWh", Brand: "Nissan", Model: "Leaf", AutonomyKm: 385, BatteryKWh: 62, ChargeTimeH: 0.67, Seats: 5},
		{ID: "4", Name: "Peugeot e-208 GT", Brand: "Peugeot", Model: "e-208", AutonomyKm: 340, BatteryKWh: 50, ChargeTimeH: 0.8, Seats: 5},
		{ID: "5", Name: "Volkswagen ID.3 Pro", Brand: "Volkswagen", Model: "ID.3", AutonomyKm: 420, BatteryKWh: 58, ChargeTimeH: 0.7, Seats: 5},
		{ID: "6", Name: "Hyundai Kona Electric 64kWh", Brand: "Hyundai", Model: "Kona Electric", AutonomyKm: 484, BatteryKWh: 64, ChargeTimeH: 0.65, Seats: 5},
		{ID: "7", Name: "BMW i3 120Ah", Brand: "BMW", Model: "i3", AutonomyKm: 310, BatteryKWh: 42, ChargeTimeH: 0.85, Seats: 4},
		{ID: "8", Name: "Audi e-tron 55 quattro", Brand: "Audi", Model: "e-tron", AutonomyKm: 436, BatteryKWh: 95, ChargeTimeH: 0.6, Seats: 5},
		{ID: "9", Name: "Mercedes EQC 400", Brand: "Mercedes", Model: "EQC", AutonomyKm: 417, BatteryKWh: 80, ChargeTimeH: 0.7, Seats: 5},
		{ID: "10", Name: "Kia e-Niro 64kWh", Brand: "Kia", Model: "e-Niro", AutonomyKm: 455, BatteryKWh: 64, ChargeTimeH: 0.65, Seats: 5},
	}
}

func fallbackCities() map[string]City {
	cities := []City{
		{Name: "Paris", Lat: 48.8566, Lon: 2.3522, Population: 2165423},
		{Name: "Marseille", Lat: 43.2965, Lon: 5.3698, Population: 869815},
		{Name: "Lyon", Lat: 45.7640, Lon: 4.8357, Population: 516092},
		{Name: "Toulouse", Lat: 43.6047, Lon: 1.4442, Population: 479553},
		{Name: "Nice", Lat: 43.7102, Lon: 7.2620, Population: 340017},
		{Name: "Nantes", Lat: 47.2184, Lon: -1.5536, Population: 309346},
		{Name: "Montpellier", Lat: 43.6108, Lon: 3.8767, Population: 285121},
		{Name: "Strasbourg", Lat: 48.5734, Lon: 7.7521, Population: 280966},
		{Name: "Bordeaux", Lat: 44.8378, Lon: -0.5792, Population: 254436},
		{Name: "Lille", Lat: 50.6292, Lon: 3.0573, Population: 232787},
		{Name: "Rennes", Lat: 48.1173, Lon: -1.6778, Population: 216815},
		{Name: "Reims", Lat: 49.2583, Lon: 4.0317, Population: 182592},
		{Name: "Grenoble", Lat: 45.1885, Lon: 5.7245, Population: 158454},
		{Name: "Dijon", Lat: 47.3220, Lon: 5.0415, Population: 155090},
		{Name: "Angers", Lat: 47.4784, Lon: -0.5632, Population: 151229},
	}

	m := make(map[string]City, len(cities))
	for _, c := range cities {
		c.Key = CityKey(c.Name)
		m[c.Key] = c
	}
	return m
}

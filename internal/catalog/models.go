// Package catalog provides the vehicle and city catalogs behind
// process-lifetime caches, each backed by a remote directory with a static
// fallback dataset.
package catalog

import (
	"strings"

	"github.com/voltroute/voltroute/pkg/geo"
)

// Vehicle describes an electric vehicle from the vehicle directory.
// Immutable once fetched; lives as long as the catalog cache.
type Vehicle struct {
	ID          string
	Name        string
	Brand       string
	Model       string
	AutonomyKm  int     // rated range per full charge
	BatteryKWh  float64 // usable battery capacity
	ChargeTimeH float64 // time per charging stop
	Seats       int
}

// City is a commune record from the city directory, keyed by its
// normalized name.
type City struct {
	Key        string
	Name       string
	Lat        float64
	Lon        float64
	Population int
}

// Point returns the city's coordinates.
func (c City) Point() geo.Point {
	return geo.Point{Lat: c.Lat, Lon: c.Lon}
}

// cityKeyReplacer strips the separators that vary between spellings of the
// same commune name.
var cityKeyReplacer = strings.NewReplacer(" ", "", "-", "", "'", "")

// CityKey normalizes a city name into its catalog lookup key: lowercase,
// with spaces, hyphens and apostrophes removed. Distinct communes can
// collide under this scheme; the catalog resolves collisions last-write-wins
// (a known limitation of the normalization, kept as-is).
func CityKey(name string) string {
	return cityKeyReplacer.Replace(strings.ToLower(name))
}

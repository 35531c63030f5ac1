// Package geo provides great-circle distance and linear interpolation
// helpers for WGS84 coordinates.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Point represents a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point lies within WGS84 coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Haversine returns the great-circle distance between two points in kilometers.
func Haversine(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Interpolate returns the planar linear blend of two points at the given
// ratio (0 = a, 1 = b). This is a straight lat/lon interpolation, not a
// great-circle interpolation; over the distances involved the error is
// acceptable for station placement.
func Interpolate(a, b Point, ratio float64) Point {
	return Point{
		Lat: a.Lat + (b.Lat-a.Lat)*ratio,
		Lon: a.Lon + (b.Lon-a.Lon)*ratio,
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

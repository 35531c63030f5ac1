package trip

import (
	"math"

	"github.com/voltroute/voltroute/internal/route"
)

// SafetyMargin is the fraction of the rated range treated as usable. Drivers
// do not run the battery from 100% to 0% between charges.
const SafetyMargin = 0.85

// EffectiveRange returns the usable range in km for a rated autonomy.
func EffectiveRange(autonomyKm float64) float64 {
	return autonomyKm * SafetyMargin
}

// RequiredStops returns how many charging stops a trip needs. A trip within
// the effective range needs none; past that, one stop per effective-range
// segment of the remaining distance.
func RequiredStops(distanceKm, autonomyKm float64) int {
	effective := EffectiveRange(autonomyKm)
	if distanceKm <= effective {
		return 0
	}
	return int(math.Floor((distanceKm-effective)/effective)) + 1
}

// TotalTravelTime returns the trip duration in hours: driving at cruising
// speed plus a full charge session per stop.
func TotalTravelTime(distanceKm, autonomyKm, chargeTimeH float64) float64 {
	stops := RequiredStops(distanceKm, autonomyKm)
	return distanceKm/route.AverageSpeedKmh + float64(stops)*chargeTimeH
}

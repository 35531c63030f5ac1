package trip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voltroute/voltroute/internal/trip"
)

func TestEffectiveRange(t *testing.T) {
	assert.InDelta(t, 335.75, trip.EffectiveRange(395), 1e-9)
	assert.InDelta(t, 493.0, trip.EffectiveRange(580), 1e-9)
}

func TestRequiredStops(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		autonomyKm float64
		want       int
	}{
		{"well within range", 300, 400, 0},
		{"exactly effective range", 340, 400, 0},
		{"just past effective range", 341, 400, 1},
		{"paris to lyon in a zoe", 465, 395, 1},
		{"paris to marseille in a tesla", 775, 580, 1},
		{"long trip short range", 1000, 300, 3},
		{"zero distance", 0, 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trip.RequiredStops(tt.distanceKm, tt.autonomyKm))
		})
	}
}

func TestTotalTravelTime(t *testing.T) {
	tests := []struct {
		name        string
		distanceKm  float64
		autonomyKm  float64
		chargeTimeH float64
		want        float64
		delta       float64
	}{
		{"no stops is pure driving", 300, 400, 0.75, 300.0 / 90.0, 1e-9},
		{"one stop adds one charge", 775, 580, 0.5, 775.0/90.0 + 0.5, 1e-9},
		{"three stops", 1000, 300, 0.8, 1000.0/90.0 + 3*0.8, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, trip.TotalTravelTime(tt.distanceKm, tt.autonomyKm, tt.chargeTimeH), tt.delta)
		})
	}
}

package checkin

import (
	"testing"

	"attendly/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestValidateGeofenceBoundaryIsWithinRange(t *testing.T) {
	target := Target{Name: "HQ", Latitude: 0, Longitude: 0, RadiusMeters: 500}

	// Walk positions outward along the equator and check the comparison
	// against the independently computed distance at every step.
	for i := 0; i <= 100; i++ {
		pos := Position{Latitude: 0, Longitude: float64(i) * 0.0001}
		res := ValidateGeofence(pos, target)
		d := geo.HaversineMeters(pos.Latitude, pos.Longitude, target.Latitude, target.Longitude)
		assert.Equal(t, d, res.DistanceMeters)
		assert.Equal(t, 500, res.AllowedRadiusMeters)
		assert.Equal(t, d <= 500, res.WithinRange, "distance %dm", d)
	}
}

func TestValidateGeofenceExactBoundary(t *testing.T) {
	target := Target{Latitude: 0, Longitude: 0, RadiusMeters: 111}
	pos := Position{Latitude: 0.001, Longitude: 0}
	res := ValidateGeofence(pos, target)
	assert.Equal(t, res.DistanceMeters <= res.AllowedRadiusMeters, res.WithinRange)
}

func TestValidateGeofenceAtCenter(t *testing.T) {
	target := Target{Latitude: -1.2921, Longitude: 36.8219, RadiusMeters: 50}
	res := ValidateGeofence(Position{Latitude: -1.2921, Longitude: 36.8219}, target)
	assert.True(t, res.WithinRange)
	assert.Equal(t, 0, res.DistanceMeters)
}

func TestValidateGeofenceFarAway(t *testing.T) {
	target := Target{Latitude: 0, Longitude: 0, RadiusMeters: 500}
	res := ValidateGeofence(Position{Latitude: 0.009, Longitude: 0}, target) // ~1km north
	assert.False(t, res.WithinRange)
	assert.Greater(t, res.DistanceMeters, 500)
}

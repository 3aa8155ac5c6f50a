package checkin

import "attendly/pkg/geo"

// Position is a candidate device position in decimal degrees.
type Position struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
}

// Target is a resolved geofence center with its allowed radius.
type Target struct {
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}

// GeofenceResult is the outcome of one geofence check.
type GeofenceResult struct {
	DistanceMeters      int
	AllowedRadiusMeters int
	WithinRange         bool
}

// ValidateGeofence measures the great-circle distance from pos to target and
// compares it to the allowed radius. A distance exactly on the boundary is in
// range.
func ValidateGeofence(pos Position, target Target) GeofenceResult {
	d := geo.HaversineMeters(pos.Latitude, pos.Longitude, target.Latitude, target.Longitude)
	return GeofenceResult{
		DistanceMeters:      d,
		AllowedRadiusMeters: target.RadiusMeters,
		WithinRange:         d <= target.RadiusMeters,
	}
}

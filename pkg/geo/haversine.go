package geo

import "math"

// EarthRadiusMeters is the Earth mean radius used for Haversine.
const EarthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance in meters between two
// points (lat/lng in decimal degrees), rounded to the nearest integer.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) int {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(lat1), rad(lat2)
	Δφ := rad(lat2 - lat1)
	Δλ := rad(lng2 - lng1)
	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(math.Round(EarthRadiusMeters * c))
}

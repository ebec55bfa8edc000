package utils

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371

// Radius bounds for nearby queries, in meters.
const (
	DefaultRadiusMeters = 5000
	MinRadiusMeters     = 100
	MaxRadiusMeters     = 50000
)

// HaversineKm returns the great-circle distance in kilometers between two
// lat/lng coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ClampRadius substitutes the default for an unset radius and clamps the
// rest to [MinRadiusMeters, MaxRadiusMeters].
func ClampRadius(meters int) int {
	if meters <= 0 {
		return DefaultRadiusMeters
	}
	if meters < MinRadiusMeters {
		return MinRadiusMeters
	}
	if meters > MaxRadiusMeters {
		return MaxRadiusMeters
	}
	return meters
}

package geo

import (
	"math"

	"gym-occupancy-backend/internal/model"
)

// earthRadiusKm is the spherical-Earth approximation used by the haversine
// formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometers between two
// coordinate pairs given in degrees. The result is non-negative, symmetric,
// and zero for identical points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Resolve returns the best-known coordinates for a gym: stored latitude and
// longitude when both are present, otherwise the bundled postcode lookup
// table. ok is false when neither source yields a position, so batch callers
// can skip the gym instead of failing.
func Resolve(g model.Gym) (lat, lng float64, ok bool) {
	if g.Latitude != nil && g.Longitude != nil {
		return *g.Latitude, *g.Longitude, true
	}
	if coord, found := postcodeCoords[g.Postcode]; found {
		return coord.Lat, coord.Lng, true
	}
	return 0, 0, false
}

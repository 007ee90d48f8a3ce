// Package geo holds the pure geometry helpers the tracking engine is
// built on: great-circle distance, the road-distance correction, and
// speed-based ETA estimation. No state, no I/O.
package geo

import (
	"math"

	"freight-tracking-service/internal/domain"
)

const earthRadiusMeters = 6371000.0

func degreesToRadians(deg float64) float64 { return deg * math.Pi / 180 }

// Haversine returns the great-circle distance between two coordinates
// in meters.
func Haversine(a, b domain.Coordinate) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	deltaLat := degreesToRadians(b.Lat - a.Lat)
	deltaLon := degreesToRadians(b.Lon - a.Lon)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// RoadDistance applies the straight-line to road-distance correction
// factor. The factor is an empirical configuration default, not a
// calibrated constant; it is applied uniformly to stay cheap per fix.
func RoadDistance(straightMeters, factor float64) float64 {
	return ClampMeters(straightMeters * factor)
}

// EtaSeconds estimates travel time for a distance at an assumed average
// speed. Never negative; a non-positive speed yields zero rather than a
// division blow-up.
func EtaSeconds(distanceMeters, speedKmh float64) float64 {
	if speedKmh <= 0 || math.IsNaN(speedKmh) {
		return 0
	}
	metersPerSecond := speedKmh * 1000 / 3600
	return ClampMeters(distanceMeters) / metersPerSecond
}

// ClampMeters maps NaN and negative distances to zero.
func ClampMeters(m float64) float64 {
	if math.IsNaN(m) || m < 0 {
		return 0
	}
	return m
}

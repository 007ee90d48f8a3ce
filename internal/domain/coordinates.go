package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate validates latitude/longitude ranges before constructing.
// Out-of-range values are rejected here and never propagate further.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("coordinate out of range: lat=%v lon=%v", lat, lon)
	}
	return c, nil
}

// Valid reports whether the coordinate lies within [-90,90] x [-180,180].
// NaN compares false against both bounds, so it fails validation as well.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

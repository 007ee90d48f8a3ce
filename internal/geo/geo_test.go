package geo

import (
	"math"
	"testing"

	"freight-tracking-service/internal/domain"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Phoenix -> Tucson is roughly 172 km great-circle.
	phoenix := domain.Coordinate{Lat: 33.4484, Lon: -112.0740}
	tucson := domain.Coordinate{Lat: 32.2226, Lon: -110.9747}

	got := Haversine(phoenix, tucson)
	if got < 170000 || got > 175000 {
		t.Fatalf("Haversine = %.0f m, want ~172 km", got)
	}
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	p := domain.Coordinate{Lat: 51.5, Lon: -0.12}
	if d := Haversine(p, p); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := domain.Coordinate{Lat: 40.7128, Lon: -74.0060}
	b := domain.Coordinate{Lat: 34.0522, Lon: -118.2437}

	ab := Haversine(a, b)
	ba := Haversine(b, a)
	if math.Abs(ab-ba) > 1e-6 {
		t.Fatalf("asymmetric distance: %v vs %v", ab, ba)
	}
}

func TestRoadDistanceAppliesFactor(t *testing.T) {
	if got := RoadDistance(1000, 1.3); got != 1300 {
		t.Fatalf("RoadDistance = %v, want 1300", got)
	}
}

func TestEtaSeconds(t *testing.T) {
	// 60 km at 60 km/h is one hour.
	if got := EtaSeconds(60000, 60); got != 3600 {
		t.Fatalf("EtaSeconds = %v, want 3600", got)
	}

	if got := EtaSeconds(-500, 60); got != 0 {
		t.Fatalf("negative distance eta = %v, want 0", got)
	}
	if got := EtaSeconds(1000, 0); got != 0 {
		t.Fatalf("zero speed eta = %v, want 0", got)
	}
}

func TestClampMeters(t *testing.T) {
	if got := ClampMeters(math.NaN()); got != 0 {
		t.Fatalf("NaN clamp = %v, want 0", got)
	}
	if got := ClampMeters(-1); got != 0 {
		t.Fatalf("negative clamp = %v, want 0", got)
	}
	if got := ClampMeters(42); got != 42 {
		t.Fatalf("clamp changed a valid value: %v", got)
	}
}

package domain

import (
	"testing"
	"time"
)

func TestRoutePlanDestination(t *testing.T) {
	plan := &RoutePlan{
		Steps: []RouteStep{
			{End: Coordinate{Lat: 1, Lon: 1}},
			{End: Coordinate{Lat: 2, Lon: 2}},
		},
		Polyline: []Coordinate{{Lat: 0, Lon: 0}, {Lat: 2.5, Lon: 2.5}},
	}

	// Polyline wins when present; it carries the exact final point.
	if got := plan.Destination(); got != (Coordinate{Lat: 2.5, Lon: 2.5}) {
		t.Fatalf("destination = %+v, want the last polyline point", got)
	}

	plan.Polyline = nil
	if got := plan.Destination(); got != (Coordinate{Lat: 2, Lon: 2}) {
		t.Fatalf("destination = %+v, want the last step end", got)
	}

	empty := &RoutePlan{}
	if got := empty.Destination(); got != (Coordinate{}) {
		t.Fatalf("empty plan destination = %+v, want zero", got)
	}
}

func TestRoutePlanStaleAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	plan := &RoutePlan{FetchedAt: now.Add(-20 * time.Minute)}

	if !plan.StaleAfter(now, 15*time.Minute) {
		t.Fatal("20 minute old plan should be stale at 15 minute max age")
	}
	if plan.StaleAfter(now, 30*time.Minute) {
		t.Fatal("20 minute old plan should be fresh at 30 minute max age")
	}
	if plan.StaleAfter(now, 0) {
		t.Fatal("zero max age disables staleness")
	}
}

func TestCoordinateValidation(t *testing.T) {
	if _, err := NewCoordinate(91, 0); err == nil {
		t.Fatal("latitude above 90 must be rejected")
	}
	if _, err := NewCoordinate(0, -181); err == nil {
		t.Fatal("longitude below -180 must be rejected")
	}
	c, err := NewCoordinate(52.52, 13.405)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Valid() {
		t.Fatal("in-range coordinate should be valid")
	}
}

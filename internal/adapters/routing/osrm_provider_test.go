package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/ports"
)

const osrmRouteBody = `{
  "code": "Ok",
  "routes": [{
    "distance": 1500.0,
    "duration": 120.0,
    "geometry": {"coordinates": [[-112.07, 33.44], [-112.06, 33.45], [-112.05, 33.46]]},
    "legs": [{
      "steps": [
        {
          "distance": 700.0, "duration": 60.0, "name": "Madison St",
          "maneuver": {"type": "depart", "modifier": "", "location": [-112.07, 33.44]},
          "geometry": {"coordinates": [[-112.07, 33.44], [-112.06, 33.45]]}
        },
        {
          "distance": 800.0, "duration": 60.0, "name": "7th Ave",
          "maneuver": {"type": "turn", "modifier": "left", "location": [-112.06, 33.45]},
          "geometry": {"coordinates": [[-112.06, 33.45], [-112.05, 33.46]]}
        }
      ]
    }]
  }]
}`

func TestOSRMFetchRouteNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(osrmRouteBody))
	}))
	defer srv.Close()

	provider := NewOSRMProvider(srv.URL)
	plan, err := provider.FetchRoute(
		context.Background(),
		domain.Coordinate{Lat: 33.44, Lon: -112.07},
		domain.Coordinate{Lat: 33.46, Lon: -112.05},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.TotalDistanceMeters != 1500 || plan.TotalDurationSeconds != 120 {
		t.Fatalf("totals = %v m / %v s", plan.TotalDistanceMeters, plan.TotalDurationSeconds)
	}
	if len(plan.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(plan.Steps))
	}
	if plan.Steps[0].Maneuver != domain.ManeuverDepart {
		t.Fatalf("step 0 maneuver = %q", plan.Steps[0].Maneuver)
	}
	if plan.Steps[1].Maneuver != domain.ManeuverTurnLeft {
		t.Fatalf("step 1 maneuver = %q", plan.Steps[1].Maneuver)
	}
	if plan.Steps[1].Instruction != "Turn left onto 7th Ave" {
		t.Fatalf("step 1 instruction = %q", plan.Steps[1].Instruction)
	}
	if plan.Steps[1].End != (domain.Coordinate{Lat: 33.46, Lon: -112.05}) {
		t.Fatalf("step 1 end = %+v", plan.Steps[1].End)
	}
	if len(plan.Polyline) != 3 {
		t.Fatalf("polyline length = %d, want 3", len(plan.Polyline))
	}
}

func TestOSRMNoRouteIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	provider := NewOSRMProvider(srv.URL)
	_, err := provider.FetchRoute(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1})
	if !errors.Is(err, ports.ErrRouteUnavailable) {
		t.Fatalf("err = %v, want ErrRouteUnavailable", err)
	}
}

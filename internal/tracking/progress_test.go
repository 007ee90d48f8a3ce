package tracking

import (
	"math"
	"testing"

	"freight-tracking-service/internal/domain"
)

func TestProgressMacroAnchors(t *testing.T) {
	if got := progressPercent(domain.StatusCreated, 50000, 100000); got != 10 {
		t.Fatalf("created = %v, want 10", got)
	}
	if got := progressPercent(domain.StatusAccepted, 50000, 100000); got != 25 {
		t.Fatalf("accepted = %v, want 25", got)
	}
	if got := progressPercent(domain.StatusDelivered, 50000, 100000); got != 100 {
		t.Fatalf("delivered = %v, want 100", got)
	}
}

func TestProgressInTransitBlend(t *testing.T) {
	// Halfway: fine estimate 50 %, inside the clamp band.
	if got := progressPercent(domain.StatusInTransit, 50000, 100000); got != 50 {
		t.Fatalf("halfway = %v, want 50", got)
	}
	// Barely moved: fine estimate 1 %, clamped up to 25.
	if got := progressPercent(domain.StatusInTransit, 99000, 100000); got != 25 {
		t.Fatalf("start = %v, want clamp to 25", got)
	}
	// Nearly there: fine estimate 99 %, clamped down to 90.
	if got := progressPercent(domain.StatusInTransit, 1000, 100000); got != 90 {
		t.Fatalf("end = %v, want clamp to 90", got)
	}
}

func TestProgressInTransitWithoutBaseline(t *testing.T) {
	if got := progressPercent(domain.StatusInTransit, 50000, 0); got != 25 {
		t.Fatalf("no baseline = %v, want 25", got)
	}
}

func TestProgressAlwaysInRange(t *testing.T) {
	statuses := []domain.DeliveryStatus{
		domain.StatusCreated, domain.StatusAccepted,
		domain.StatusInTransit, domain.StatusDelivered,
	}
	remainings := []float64{-100, 0, 1, 50000, 1e9, math.NaN()}

	for _, st := range statuses {
		for _, r := range remainings {
			got := progressPercent(st, r, 100000)
			if got < 0 || got > 100 || math.IsNaN(got) {
				t.Fatalf("progress(%s, %v) = %v out of range", st, r, got)
			}
		}
	}
}

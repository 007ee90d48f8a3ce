package tracking

import "testing"

var testThresholds = []float64{5, 1, 0.5}

func TestCrossThresholdsFiresTightestOnJump(t *testing.T) {
	fired := make(map[float64]bool)

	// Reporting gap: 6 km -> 0.4 km in one fix. Only 0.5 fires; the
	// skipped 5 and 1 are recorded as crossed without firing.
	if _, ok := crossThresholds(fired, testThresholds, 6); ok {
		t.Fatal("nothing should fire at 6 km")
	}

	got, ok := crossThresholds(fired, testThresholds, 0.4)
	if !ok || got != 0.5 {
		t.Fatalf("fired %v/%v, want 0.5", got, ok)
	}

	// No stale looser threshold fires later.
	if v, ok := crossThresholds(fired, testThresholds, 0.3); ok {
		t.Fatalf("unexpected late fire of %v", v)
	}
}

func TestCrossThresholdsFiresEachOnce(t *testing.T) {
	fired := make(map[float64]bool)

	type fire struct {
		threshold float64
		ok        bool
	}
	var fires []fire
	for _, remaining := range []float64{7, 4.8, 4.2, 0.9, 0.9, 0.45, 0.2} {
		v, ok := crossThresholds(fired, testThresholds, remaining)
		if ok {
			fires = append(fires, fire{v, ok})
		}
	}

	want := []float64{5, 1, 0.5}
	if len(fires) != len(want) {
		t.Fatalf("fired %d times, want %d", len(fires), len(want))
	}
	for i, f := range fires {
		if f.threshold != want[i] {
			t.Fatalf("fire %d = %v, want %v", i, f.threshold, want[i])
		}
	}
}

func TestCrossThresholdsAtMostOnePerFix(t *testing.T) {
	fired := make(map[float64]bool)

	if v, ok := crossThresholds(fired, testThresholds, 0.1); !ok || v != 0.5 {
		t.Fatalf("fired %v/%v, want single 0.5", v, ok)
	}
	if len(fired) != 3 {
		t.Fatalf("crossed set size = %d, want all 3 recorded", len(fired))
	}
}

func TestCrossThresholdsNothingAboveLoosest(t *testing.T) {
	fired := make(map[float64]bool)
	if v, ok := crossThresholds(fired, testThresholds, 12); ok {
		t.Fatalf("unexpected fire of %v at 12 km", v)
	}
	if len(fired) != 0 {
		t.Fatal("no thresholds should be recorded above the loosest")
	}
}

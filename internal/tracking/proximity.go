package tracking

// crossThresholds records every threshold the remaining distance is now
// at or below and returns the one to notify for: the tightest
// newly-crossed value. At most one event per fix, and a threshold that
// was skipped by a reporting gap (6 km -> 0.4 km jump crosses 5, 1 and
// 0.5 at once) is marked crossed without ever firing, so a later fix
// cannot emit a stale "carrier is 5 km away" after the tighter
// notification already went out. fired is append-only for the session's
// lifetime.
func crossThresholds(fired map[float64]bool, thresholdsKmDesc []float64, remainingKm float64) (float64, bool) {
	notify := 0.0
	found := false

	// Scan tightest to loosest: the descending list walked backward.
	for i := len(thresholdsKmDesc) - 1; i >= 0; i-- {
		t := thresholdsKmDesc[i]
		if remainingKm > t || fired[t] {
			continue
		}
		fired[t] = true
		if !found {
			notify = t
			found = true
		}
	}

	return notify, found
}

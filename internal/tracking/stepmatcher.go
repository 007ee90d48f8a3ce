package tracking

import (
	"math"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/geo"
)

// matchStep determines which step the mover is currently executing.
//
// Only steps from the current index onward are considered; passed steps
// are never reconsidered, so the index is monotone for the lifetime of
// one route. The index advances only when the nearest remaining step
// endpoint is strictly ahead and inside the advancement radius, which
// keeps GPS jitter from bouncing it backward or skipping ahead on a
// noisy fix. A position outside the radius of every remaining endpoint
// (off-route) freezes the index.
//
// Returns the new index, whether it advanced, and the distance to the
// nearest remaining step endpoint (for off-route detection).
func matchStep(
	pos domain.Coordinate,
	steps []domain.RouteStep,
	current int,
	advanceRadiusMeters float64,
) (index int, advanced bool, nearestMeters float64) {
	if current < 0 {
		current = 0
	}
	if current >= len(steps) {
		return current, false, math.Inf(1)
	}

	best := -1
	bestDist := math.Inf(1)
	for i := current; i < len(steps); i++ {
		d := geo.Haversine(pos, steps[i].End)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	if best > current && bestDist <= advanceRadiusMeters {
		return best, true, bestDist
	}
	return current, false, bestDist
}

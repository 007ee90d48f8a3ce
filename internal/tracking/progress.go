package tracking

import (
	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/geo"
)

// progressPercent blends the delivery's macro-status anchor with the
// fine-grained remaining-distance estimate. The fine value only applies
// while in transit and is clamped to [25,90] so it can never cross a
// macro-status boundary. Always within [0,100].
func progressPercent(status domain.DeliveryStatus, remainingMeters, initialMeters float64) float64 {
	switch status {
	case domain.StatusCreated:
		return 10
	case domain.StatusAccepted:
		return 25
	case domain.StatusDelivered:
		return 100
	case domain.StatusInTransit:
		if initialMeters <= 0 {
			return 25
		}
		fine := (1 - geo.ClampMeters(remainingMeters)/initialMeters) * 100
		if fine < 25 {
			return 25
		}
		if fine > 90 {
			return 90
		}
		return fine
	}
	return 10
}

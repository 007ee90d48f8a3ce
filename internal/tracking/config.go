package tracking

import (
	"time"

	"freight-tracking-service/internal/domain"
)

// Config holds the engine's tuning values. The road factor and assumed
// speeds are empirical defaults carried over from operations, not
// calibrated constants; override them per deployment.
type Config struct {
	// A step endpoint closer than this advances the step index.
	AdvanceRadiusMeters float64
	// Straight-line distance to destination below this means arrival.
	ArrivalRadiusMeters float64
	// Straight-line to road-distance correction factor.
	RoadFactor float64
	// Fallback assumed speed when the vehicle class has no entry.
	AssumedSpeedKmh float64
	SpeedByClassKmh map[domain.VehicleClass]float64
	// Remaining-distance notification thresholds, descending.
	ProximityThresholdsKm []float64
	// A memoized route older than this is refetched.
	RouteStaleAfter time.Duration
	// Upper bound for one provider attempt before failover.
	RouteAttemptTimeout time.Duration
	// Inbound fix buffer; newest fix wins when full.
	FixBufferSize int
	// Off-route detection: this far from every remaining step endpoint
	// for DeviationFixLimit consecutive fixes triggers a route refetch.
	DeviationRadiusMeters float64
	DeviationFixLimit     int
	// Suppress spoken instructions (bookkeeping still runs).
	Muted bool
}

func DefaultConfig() Config {
	return Config{
		AdvanceRadiusMeters: 50,
		ArrivalRadiusMeters: 50,
		RoadFactor:          1.3,
		AssumedSpeedKmh:     60,
		SpeedByClassKmh: map[domain.VehicleClass]float64{
			domain.ClassEconomy: 60,
			domain.ClassVan:     55,
			domain.ClassTruck:   45,
		},
		ProximityThresholdsKm: []float64{5, 1, 0.5},
		RouteStaleAfter:       15 * time.Minute,
		RouteAttemptTimeout:   10 * time.Second,
		FixBufferSize:         16,
		DeviationRadiusMeters: 500,
		DeviationFixLimit:     3,
	}
}

func (c Config) speedFor(class domain.VehicleClass) float64 {
	if s, ok := c.SpeedByClassKmh[class]; ok && s > 0 {
		return s
	}
	return c.AssumedSpeedKmh
}

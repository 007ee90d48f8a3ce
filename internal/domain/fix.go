package domain

import "time"

// A single timestamped position reading from a moving vehicle.
// Fixes are immutable once created. Devices report at irregular
// intervals (commonly 1-15s) and readings may arrive late; a fix whose
// RecordedAt is older than the session's last accepted fix is discarded
// so the notion of "current position" only ever moves forward in time.
type LocationFix struct {
	Coordinate Coordinate
	RecordedAt time.Time
	// Horizontal accuracy in meters as reported by the device.
	// Zero means the device did not report one.
	Accuracy float64
}

// Valid reports whether the fix can be accepted at all: in-range
// coordinates and a non-zero timestamp.
func (f LocationFix) Valid() bool {
	return f.Coordinate.Valid() && !f.RecordedAt.IsZero()
}

package domain

import "time"

// SessionState is the tracking session's lifecycle state.
type SessionState string

const (
	// Created, no route yet and no live stream.
	StateIdle SessionState = "idle"
	// Route fetch in flight; incoming fixes buffer until it resolves.
	StateAwaitingRoute SessionState = "awaitingRoute"
	// Consuming the live fix stream.
	StateTracking SessionState = "tracking"
	// Position dropped inside the arrival radius. Terminal for
	// navigation; the delivery status change itself is owned elsewhere.
	StateArrived SessionState = "arrived"
	// Explicitly stopped. Terminal; the final snapshot stays inspectable.
	StateStopped SessionState = "stopped"
)

// Terminal reports whether no further fixes will be processed.
func (s SessionState) Terminal() bool {
	return s == StateArrived || s == StateStopped
}

// DeliveryStatus is the deal's macro-status, owned by the marketplace.
// The engine only reads it as the coarse anchor for progress blending.
type DeliveryStatus string

const (
	StatusCreated   DeliveryStatus = "created"
	StatusAccepted  DeliveryStatus = "accepted"
	StatusInTransit DeliveryStatus = "inTransit"
	StatusDelivered DeliveryStatus = "delivered"
)

// VehicleClass selects the assumed-speed default used for ETA estimates.
type VehicleClass string

const (
	ClassEconomy VehicleClass = "economy"
	ClassVan     VehicleClass = "van"
	ClassTruck   VehicleClass = "truck"
)

// Snapshot is the per-update view published to subscribers (map
// renderer, dashboards, persistence). Delivery is at-least-once;
// subscribers must tolerate duplicate identical snapshots.
type Snapshot struct {
	SessionID              string       `json:"session_id"`
	State                  SessionState `json:"state"`
	CurrentPosition        *Coordinate  `json:"current_position,omitempty"`
	CurrentStepIndex       int          `json:"current_step_index"`
	RemainingDistanceMeter float64      `json:"remaining_distance_meters"`
	EtaSeconds             float64      `json:"eta_seconds"`
	ProgressPercent        float64      `json:"progress_percent"`
	RouteUnavailable       bool         `json:"route_unavailable"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

package domain

// Event is a side-effect emitted by a tracking session. Each logical
// event fires at most once per session: a proximity threshold is never
// re-crossed, an instruction is never re-announced, arrival happens once.
// Downstream consumers (push dispatcher, speech engine) are expected to
// tolerate duplicates anyway, but the engine does not produce them.
type Event interface {
	// Kind is a stable identifier, also used as the routing-key suffix
	// when events are published to a broker.
	Kind() string
}

// Emitted when remaining distance first drops at or below a configured
// proximity threshold.
type ProximityCrossed struct {
	ThresholdKm     float64 `json:"threshold_km"`
	RemainingMeters float64 `json:"remaining_meters"`
}

func (ProximityCrossed) Kind() string { return "proximity" }

// Emitted when the mover advances to a step that has not been spoken yet.
type AnnounceInstruction struct {
	StepIndex      int     `json:"step_index"`
	Instruction    string  `json:"instruction"`
	DistanceMeters float64 `json:"distance_meters"`
}

func (AnnounceInstruction) Kind() string { return "instruction" }

// Emitted once when the position enters the arrival radius.
type Arrived struct {
	RemainingMeters float64 `json:"remaining_meters"`
}

func (Arrived) Kind() string { return "arrived" }

// Emitted once per failed fetch attempt chain when no provider could
// produce a plan.
type RouteUnavailable struct {
	Reason string `json:"reason"`
}

func (RouteUnavailable) Kind() string { return "route_unavailable" }

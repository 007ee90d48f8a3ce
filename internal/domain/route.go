package domain

import "time"

// Maneuver is the shared vocabulary all routing providers normalize onto.
// Provider-specific maneuver types never leave their adapter.
type Maneuver string

const (
	ManeuverStraight    Maneuver = "straight"
	ManeuverTurnLeft    Maneuver = "turnLeft"
	ManeuverTurnRight   Maneuver = "turnRight"
	ManeuverSlightLeft  Maneuver = "slightLeft"
	ManeuverSlightRight Maneuver = "slightRight"
	ManeuverSharpLeft   Maneuver = "sharpLeft"
	ManeuverSharpRight  Maneuver = "sharpRight"
	ManeuverUTurn       Maneuver = "uTurn"
	ManeuverRoundabout  Maneuver = "roundabout"
	ManeuverMerge       Maneuver = "merge"
	ManeuverFork        Maneuver = "fork"
	ManeuverArrive      Maneuver = "arrive"
	ManeuverDepart      Maneuver = "depart"
)

// Represents one maneuver in a route. Steps are ordered and immutable
// once a RoutePlan is fetched. Distances are always meters and durations
// always seconds regardless of which provider produced them.
type RouteStep struct {
	Instruction     string
	Maneuver        Maneuver
	Start           Coordinate
	End             Coordinate
	DistanceMeters  float64
	DurationSeconds float64
	RoadName        string
}

// Represents the planned route between an origin and destination.
// A RoutePlan is owned by exactly one tracking session and is never
// mutated after creation; a route change means fetching a new plan and
// replacing the old one wholesale.
type RoutePlan struct {
	TotalDistanceMeters  float64
	TotalDurationSeconds float64
	Steps                []RouteStep
	Polyline             []Coordinate
	FetchedAt            time.Time
}

// Destination returns the plan's final coordinate: the last polyline
// point when present, otherwise the last step's end.
func (p *RoutePlan) Destination() Coordinate {
	if n := len(p.Polyline); n > 0 {
		return p.Polyline[n-1]
	}
	if n := len(p.Steps); n > 0 {
		return p.Steps[n-1].End
	}
	return Coordinate{}
}

// StaleAfter reports whether the plan is older than maxAge at now.
func (p *RoutePlan) StaleAfter(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(p.FetchedAt) > maxAge
}

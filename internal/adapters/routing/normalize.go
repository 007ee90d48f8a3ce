package routing

import (
	"fmt"

	"freight-tracking-service/internal/domain"
)

// instructionText builds a spoken instruction for providers that do not
// ship one (OSRM returns bare maneuver codes).
func instructionText(m domain.Maneuver, road string) string {
	var base string
	switch m {
	case domain.ManeuverDepart:
		base = "Head out"
	case domain.ManeuverArrive:
		return "You have arrived at your destination"
	case domain.ManeuverTurnLeft:
		base = "Turn left"
	case domain.ManeuverTurnRight:
		base = "Turn right"
	case domain.ManeuverSlightLeft:
		base = "Keep slightly left"
	case domain.ManeuverSlightRight:
		base = "Keep slightly right"
	case domain.ManeuverSharpLeft:
		base = "Make a sharp left"
	case domain.ManeuverSharpRight:
		base = "Make a sharp right"
	case domain.ManeuverUTurn:
		base = "Make a U-turn"
	case domain.ManeuverRoundabout:
		base = "Take the roundabout"
	case domain.ManeuverMerge:
		base = "Merge"
	case domain.ManeuverFork:
		base = "Keep to the fork"
	default:
		base = "Continue straight"
	}

	if road == "" {
		return base
	}
	return fmt.Sprintf("%s onto %s", base, road)
}

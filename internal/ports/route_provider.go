package ports

import (
	"context"
	"errors"

	"freight-tracking-service/internal/domain"
)

// ErrRouteUnavailable is returned when a provider cannot produce a plan
// for the requested pair. Timeouts and upstream 5xx responses collapse
// into it so callers see one uniform failure mode.
var ErrRouteUnavailable = errors.New("route unavailable")

// Contract for fetching a normalized route plan between two coordinates.
// Implementations are stateless and safe for concurrent use; many
// sessions share one provider client without per-session locking.
type RouteProvider interface {
	FetchRoute(ctx context.Context, origin, destination domain.Coordinate) (*domain.RoutePlan, error)
}

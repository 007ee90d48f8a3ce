package ports

import (
	"context"

	"freight-tracking-service/internal/domain"
)

// Contract for the append-only fix persistence sink. Failures are
// non-fatal to the engine: in-memory session state is the source of
// truth for live computation, persistence is write-behind.
type FixRepository interface {
	Append(ctx context.Context, sessionID string, fix domain.LocationFix) error
}

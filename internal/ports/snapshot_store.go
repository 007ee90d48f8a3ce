package ports

import (
	"context"

	"freight-tracking-service/internal/domain"
)

// Contract for the live-state store holding each session's last
// published snapshot, so dashboards can resume without replaying the
// stream. Best-effort: write failures are logged, never surfaced to the
// session's state machine.
type SnapshotStore interface {
	Put(ctx context.Context, snapshot domain.Snapshot) error
	Get(ctx context.Context, sessionID string) (domain.Snapshot, error)
}

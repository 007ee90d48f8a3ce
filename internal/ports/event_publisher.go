package ports

import (
	"context"

	"freight-tracking-service/internal/domain"
)

// Contract for dispatching side-effect events (proximity notifications,
// spoken instructions, arrival) to downstream consumers. Dispatch runs
// off the fix-processing path; a slow publisher must not stall the next
// fix.
type EventPublisher interface {
	Publish(ctx context.Context, sessionID string, event domain.Event) error
}

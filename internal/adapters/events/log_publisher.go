package events

import (
	"context"
	"encoding/json"
	"log"

	"freight-tracking-service/internal/domain"
)

// LogPublisher writes events to the process log. The no-broker default
// for local runs and tests.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, sessionID string, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	log.Printf("event=%s session=%s payload=%s", event.Kind(), sessionID, payload)
	return nil
}

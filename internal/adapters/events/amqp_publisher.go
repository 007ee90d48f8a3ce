// Package events holds the side-effect event dispatch adapters: an
// AMQP publisher for deployments with a broker and a log publisher for
// everything else.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"freight-tracking-service/internal/domain"
)

const exchangeName = "tracking_topic"

// AMQPPublisher publishes tracking events to a topic exchange with one
// routing key per event kind (tracking.proximity, tracking.instruction,
// tracking.arrived, tracking.route_unavailable). Consumers bind what
// they care about: the push dispatcher to proximity/arrived, the speech
// engine to instruction.
type AMQPPublisher struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

type eventEnvelope struct {
	SessionID string          `json:"session_id"`
	Kind      string          `json:"kind"`
	At        time.Time       `json:"at"`
	Payload   json.RawMessage `json:"payload"`
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

// Publish one event. Channels are not safe for concurrent publish, so
// calls serialize on a mutex; sessions dispatch asynchronously and are
// not sensitive to this.
func (p *AMQPPublisher) Publish(ctx context.Context, sessionID string, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	body, err := json.Marshal(eventEnvelope{
		SessionID: sessionID,
		Kind:      event.Kind(),
		At:        time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx,
		exchangeName,
		"tracking."+event.Kind(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish %s event session=%q: %w", event.Kind(), sessionID, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return fmt.Errorf("close channel: %w", err)
	}
	return p.conn.Close()
}

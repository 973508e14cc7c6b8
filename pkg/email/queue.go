package email

import (
	"context"
	"fmt"

	"carrental/pkg/kafka"
)

const (
	EventTypeEmailRequested = "email.requested"
	SchemaVersion           = "1"
)

type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// QueueGateway hands messages to a Kafka topic for the mailer worker to deliver.
type QueueGateway struct {
	publisher Publisher
	source    string
}

func NewQueueGateway(publisher Publisher, source string) *QueueGateway {
	return &QueueGateway{publisher: publisher, source: source}
}

func (g *QueueGateway) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	km, err := kafka.NewMessage().
		WithKey(msg.To).
		WithValue(msg).
		WithEventType(EventTypeEmailRequested).
		WithSchemaVersion(SchemaVersion).
		WithSource(g.source).
		WithCorrelationID(CorrelationIDFromContext(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("build email event: %w", err)
	}

	if err := g.publisher.Publish(ctx, km); err != nil {
		return fmt.Errorf("publish email event: %w", err)
	}
	return nil
}

package eventbus

import (
	"context"

	"github.com/felixgeelhaar/taskdeck/internal/shared/domain"
)

// Publisher delivers domain events to interested consumers.
type Publisher interface {
	// Publish delivers events in order.
	Publish(ctx context.Context, events ...domain.DomainEvent) error

	// Close releases the publisher.
	Close() error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error { return nil }
func (NoopPublisher) Close() error                                                    { return nil }

package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/shared/domain"
)

// InProcessEventBus delivers events synchronously to registered consumers.
// Consumer failures are logged and never reach the publisher.
type InProcessEventBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewInProcessEventBus creates a new in-process event bus.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
	}
}

// RegisterConsumer registers an event consumer.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish dispatches each event to the consumers of its routing key.
func (b *InProcessEventBus) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	for _, event := range events {
		consumed, err := NewConsumedEvent(event)
		if err != nil {
			b.logger.Error("failed to build event envelope",
				"routing_key", event.RoutingKey(),
				"error", err,
			)
			continue
		}
		b.dispatch(ctx, consumed)
	}
	return nil
}

func (b *InProcessEventBus) dispatch(ctx context.Context, event *ConsumedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	err := b.registry.Dispatch(ctx, event)
	duration := time.Since(start)

	if err != nil {
		b.logger.Error("event dispatch failed",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return
	}

	b.logger.Debug("event dispatched",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"duration_ms", duration.Milliseconds(),
	)
}

// Close is a no-op for in-process bus.
func (b *InProcessEventBus) Close() error {
	return nil
}

// GetRegistry returns the underlying consumer registry, for inspection.
func (b *InProcessEventBus) GetRegistry() *ConsumerRegistry {
	return b.registry
}

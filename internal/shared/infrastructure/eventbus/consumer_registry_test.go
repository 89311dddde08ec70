package eventbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/eventbus"
)

type mockConsumer struct {
	eventTypes []string
	events     []*eventbus.ConsumedEvent
	err        error
}

func (m *mockConsumer) EventTypes() []string {
	return m.eventTypes
}

func (m *mockConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

const (
	keyCreated = "tracker.task.created"
	keyDeleted = "tracker.task.deleted"
)

func TestConsumerRegistry_Register(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(nil)

	registry.Register(&mockConsumer{eventTypes: []string{keyCreated, keyDeleted}})
	registry.Register(&mockConsumer{eventTypes: []string{keyCreated}})

	assert.Len(t, registry.GetConsumers(keyCreated), 2)
	assert.Len(t, registry.GetConsumers(keyDeleted), 1)
	assert.Empty(t, registry.GetConsumers("tracker.task.unknown"))
	assert.Equal(t, []string{keyCreated, keyDeleted}, registry.GetAllEventTypes())
	assert.Equal(t, 3, registry.ConsumerCount())
}

func TestConsumerRegistry_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to every consumer", func(t *testing.T) {
		registry := eventbus.NewConsumerRegistry(nil)
		c1 := &mockConsumer{eventTypes: []string{keyCreated}}
		c2 := &mockConsumer{eventTypes: []string{keyCreated}}
		registry.Register(c1)
		registry.Register(c2)

		event := &eventbus.ConsumedEvent{EventID: uuid.New(), AggregateID: "t-1", RoutingKey: keyCreated}
		require.NoError(t, registry.Dispatch(ctx, event))

		require.Len(t, c1.events, 1)
		assert.Equal(t, event.EventID, c1.events[0].EventID)
		assert.Len(t, c2.events, 1)
	})

	t.Run("no consumers", func(t *testing.T) {
		registry := eventbus.NewConsumerRegistry(nil)
		event := &eventbus.ConsumedEvent{EventID: uuid.New(), RoutingKey: keyDeleted}
		assert.NoError(t, registry.Dispatch(ctx, event))
	})

	t.Run("failure does not stop other consumers", func(t *testing.T) {
		registry := eventbus.NewConsumerRegistry(nil)
		boom := errors.New("consumer error")
		failing := &mockConsumer{eventTypes: []string{keyCreated}, err: boom}
		healthy := &mockConsumer{eventTypes: []string{keyCreated}}
		registry.Register(failing)
		registry.Register(healthy)

		err := registry.Dispatch(ctx, &eventbus.ConsumedEvent{EventID: uuid.New(), RoutingKey: keyCreated})

		assert.ErrorIs(t, err, boom)
		assert.Len(t, failing.events, 1)
		assert.Len(t, healthy.events, 1)
	})
}

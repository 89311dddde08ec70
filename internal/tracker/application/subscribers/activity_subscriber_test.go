package subscribers

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskdeck/internal/shared/domain"
	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

func TestActivitySubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(observability.LogConfig{Level: observability.LogLevelInfo, Output: &buf})
	metrics := observability.NewInMemoryMetrics()

	bus := eventbus.NewInProcessEventBus(observability.NopLogger())
	bus.RegisterConsumer(NewActivitySubscriber(logger, metrics))

	created := task.NewTaskCreated("t-1", "Buy milk")
	updated := task.NewTaskUpdated("t-1", []string{"title"})
	status := task.NewTaskStatusChanged("t-1", task.StatusToDo, task.StatusDone)
	deleted := task.NewTaskDeleted("t-1")

	events := []domain.DomainEvent{&created, &updated, &status, &deleted}
	require.NoError(t, bus.Publish(context.Background(), events...))

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksCreated))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksUpdated))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksStatusChanged, observability.T("to", "Done")))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricTasksDeleted))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsConsumed,
		observability.T("routing_key", task.RoutingKeyDeleted)))

	out := buf.String()
	assert.Contains(t, out, "task created")
	assert.Contains(t, out, "title=\"Buy milk\"")
	assert.Contains(t, out, "from=\"To Do\"")
	assert.Contains(t, out, "task deleted")
}

func TestActivitySubscriber_IgnoresBadPayload(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	s := NewActivitySubscriber(observability.NopLogger(), metrics)

	err := s.Handle(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: task.RoutingKeyCreated,
		Payload:    []byte(`{"title": 42}`),
	})

	require.NoError(t, err)
	assert.Zero(t, metrics.GetCounter(observability.MetricTasksCreated))
}

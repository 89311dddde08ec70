package subscribers

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

// ActivitySubscriber writes an activity log line and a counter for every
// task event.
type ActivitySubscriber struct {
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewActivitySubscriber creates a new activity subscriber.
func NewActivitySubscriber(logger *slog.Logger, metrics observability.Metrics) *ActivitySubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ActivitySubscriber{logger: logger, metrics: metrics}
}

// EventTypes returns the event types this subscriber handles.
func (s *ActivitySubscriber) EventTypes() []string {
	return task.RoutingKeys
}

type activityPayload struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
	From   string   `json:"from"`
	To     string   `json:"to"`
}

// Handle processes a task event.
func (s *ActivitySubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload activityPayload
	if err := event.DecodePayload(&payload); err != nil {
		s.logger.WarnContext(ctx, "failed to decode task event payload",
			"routing_key", event.RoutingKey,
			observability.ErrorKey, err,
		)
		return nil
	}

	attrs := []any{
		"task_id", event.AggregateID,
		"revision", event.Metadata.Revision,
	}

	switch event.RoutingKey {
	case task.RoutingKeyCreated:
		s.metrics.Counter(observability.MetricTasksCreated, 1)
		s.logger.InfoContext(ctx, "task created", append(attrs, "title", payload.Title)...)
	case task.RoutingKeyUpdated:
		s.metrics.Counter(observability.MetricTasksUpdated, 1)
		s.logger.InfoContext(ctx, "task updated", append(attrs, "fields", payload.Fields)...)
	case task.RoutingKeyStatusChanged:
		s.metrics.Counter(observability.MetricTasksStatusChanged, 1, observability.T("to", payload.To))
		s.logger.InfoContext(ctx, "task status changed", append(attrs, "from", payload.From, "to", payload.To)...)
	case task.RoutingKeyDeleted:
		s.metrics.Counter(observability.MetricTasksDeleted, 1)
		s.logger.InfoContext(ctx, "task deleted", attrs...)
	default:
		s.logger.WarnContext(ctx, "unknown event type", "routing_key", event.RoutingKey)
		return nil
	}

	s.metrics.Counter(observability.MetricEventsConsumed, 1, observability.T("routing_key", event.RoutingKey))
	return nil
}

package task

import (
	"github.com/felixgeelhaar/taskdeck/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated       = "tracker.task.created"
	RoutingKeyUpdated       = "tracker.task.updated"
	RoutingKeyStatusChanged = "tracker.task.status_changed"
	RoutingKeyDeleted       = "tracker.task.deleted"
)

// RoutingKeys lists every task event routing key.
var RoutingKeys = []string{
	RoutingKeyCreated,
	RoutingKeyUpdated,
	RoutingKeyStatusChanged,
	RoutingKeyDeleted,
}

// TaskCreated is emitted when a new task is appended to the store.
type TaskCreated struct {
	domain.BaseEvent
	Title string `json:"title"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID, title string) TaskCreated {
	return TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Title:     title,
	}
}

// TaskUpdated is emitted when a task is edited.
type TaskUpdated struct {
	domain.BaseEvent
	Fields []string `json:"fields"` // Names of fields that were updated
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(taskID string, fields []string) TaskUpdated {
	return TaskUpdated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated),
		Fields:    fields,
	}
}

// TaskStatusChanged is emitted by the quick status change.
type TaskStatusChanged struct {
	domain.BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

// NewTaskStatusChanged creates a TaskStatusChanged event.
func NewTaskStatusChanged(taskID string, from, to Status) TaskStatusChanged {
	return TaskStatusChanged{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyStatusChanged),
		From:      from.String(),
		To:        to.String(),
	}
}

// TaskDeleted is emitted when a task is removed.
type TaskDeleted struct {
	domain.BaseEvent
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(taskID string) TaskDeleted {
	return TaskDeleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyDeleted),
	}
}

package queries

import (
	"context"
	"time"
)

// GetTaskQuery identifies a task.
type GetTaskQuery struct {
	TaskID string
}

// GetTaskResult holds the task, if found.
type GetTaskResult struct {
	Task  TaskDTO
	Found bool
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	source TaskSource
	now    func() time.Time
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(source TaskSource, now func() time.Time) *GetTaskHandler {
	if now == nil {
		now = time.Now
	}
	return &GetTaskHandler{source: source, now: now}
}

// Handle returns the task with the given id. A missing id is reported with
// Found=false.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*GetTaskResult, error) {
	for _, t := range h.source.Tasks() {
		if t.ID == query.TaskID {
			return &GetTaskResult{Task: ToDTO(t, h.now()), Found: true}, nil
		}
	}
	return &GetTaskResult{}, nil
}

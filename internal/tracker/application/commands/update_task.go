package commands

import (
	"context"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// UpdateTaskCommand contains the fields to change. Nil members are kept.
type UpdateTaskCommand struct {
	TaskID      string
	Title       *string
	Description *string
	Status      *string
	DueDate     *string // empty string clears the deadline
}

// UpdateTaskResult reports what happened.
type UpdateTaskResult struct {
	Found    bool
	Changed  bool
	Fields   []string
	Revision uint64
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	store TaskStore
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(store TaskStore) *UpdateTaskHandler {
	return &UpdateTaskHandler{store: store}
}

// Handle validates the changes and applies them to the task.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*UpdateTaskResult, error) {
	changes := task.Changes{Title: cmd.Title, Description: cmd.Description}

	if cmd.Status != nil {
		status, err := task.ParseStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		changes.Status = &status
	}
	if cmd.DueDate != nil {
		due, err := task.ParseDate(*cmd.DueDate)
		if err != nil {
			return nil, err
		}
		changes.DueDate = &due
	}
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	if _, ok := h.store.Find(cmd.TaskID); !ok {
		return &UpdateTaskResult{Revision: h.store.Revision()}, nil
	}

	before := h.store.Revision()
	snap := h.store.Update(ctx, cmd.TaskID, changes)

	return &UpdateTaskResult{
		Found:    true,
		Changed:  snap.Revision != before,
		Fields:   changes.FieldNames(),
		Revision: snap.Revision,
	}, nil
}

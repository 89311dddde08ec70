package commands

import (
	"context"
)

// DeleteTaskCommand identifies the task to remove.
type DeleteTaskCommand struct {
	TaskID string
}

// DeleteTaskResult reports whether a task was removed.
type DeleteTaskResult struct {
	Found    bool
	Title    string
	Revision uint64
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	store TaskStore
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(store TaskStore) *DeleteTaskHandler {
	return &DeleteTaskHandler{store: store}
}

// Handle removes the task permanently. A missing id is not an error.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) (*DeleteTaskResult, error) {
	current, ok := h.store.Find(cmd.TaskID)
	if !ok {
		return &DeleteTaskResult{Revision: h.store.Revision()}, nil
	}

	snap := h.store.Delete(ctx, cmd.TaskID)
	return &DeleteTaskResult{Found: true, Title: current.Title, Revision: snap.Revision}, nil
}

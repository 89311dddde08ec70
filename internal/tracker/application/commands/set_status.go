package commands

import (
	"context"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// SetStatusCommand is the quick status change.
type SetStatusCommand struct {
	TaskID string
	Status string
}

// SetStatusResult reports the transition.
type SetStatusResult struct {
	Found    bool
	From     task.Status
	To       task.Status
	Revision uint64
}

// SetStatusHandler handles the SetStatusCommand.
type SetStatusHandler struct {
	store TaskStore
}

// NewSetStatusHandler creates a new SetStatusHandler.
func NewSetStatusHandler(store TaskStore) *SetStatusHandler {
	return &SetStatusHandler{store: store}
}

// Handle changes only the status of the task.
func (h *SetStatusHandler) Handle(ctx context.Context, cmd SetStatusCommand) (*SetStatusResult, error) {
	status, err := task.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	current, ok := h.store.Find(cmd.TaskID)
	if !ok {
		return &SetStatusResult{Revision: h.store.Revision()}, nil
	}

	snap := h.store.SetStatus(ctx, cmd.TaskID, status)
	return &SetStatusResult{
		Found:    true,
		From:     current.Status,
		To:       status,
		Revision: snap.Revision,
	}, nil
}

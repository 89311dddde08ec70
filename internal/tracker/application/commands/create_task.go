package commands

import (
	"context"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	Title       string
	Description string
	Status      string // empty means To Do
	DueDate     string // YYYY-MM-DD, empty means no deadline
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID   string
	Revision uint64
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	store TaskStore
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(store TaskStore) *CreateTaskHandler {
	return &CreateTaskHandler{store: store}
}

// Handle validates the command and appends the task.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	due, err := task.ParseDate(cmd.DueDate)
	if err != nil {
		return nil, err
	}

	fields := task.Fields{
		Title:       cmd.Title,
		Description: cmd.Description,
		Status:      status,
		DueDate:     due,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	snap := h.store.Create(ctx, fields)
	created := snap.Tasks[len(snap.Tasks)-1]

	return &CreateTaskResult{TaskID: created.ID, Revision: snap.Revision}, nil
}

package commands

import (
	"context"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/store"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// TaskStore is the mutation surface the handlers drive.
type TaskStore interface {
	Create(ctx context.Context, f task.Fields) store.Snapshot
	Update(ctx context.Context, id string, c task.Changes) store.Snapshot
	SetStatus(ctx context.Context, id string, s task.Status) store.Snapshot
	Delete(ctx context.Context, id string) store.Snapshot
	Find(id string) (task.Task, bool)
	Revision() uint64
}

var _ TaskStore = (*store.Store)(nil)

// parseStatus defaults an empty value to To Do.
func parseStatus(s string) (task.Status, error) {
	if s == "" {
		return task.StatusToDo, nil
	}
	return task.ParseStatus(s)
}

package task

import "context"

// Repository loads and saves the complete ordered task list.
// Save always receives the full list and overwrites what was stored before.
type Repository interface {
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, tasks []Task) error
}

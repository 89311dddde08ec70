package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// TaskSource provides the current task list in store order.
type TaskSource interface {
	Tasks() []task.Task
}

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	DueDate     string   `json:"dueDate"`
	CreatedAt   string   `json:"createdAt"`
	Badge       DueBadge `json:"badge,omitempty"`
}

// ToDTO converts t, computing its due badge at now.
func ToDTO(t task.Task, now time.Time) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		DueDate:     t.DueDate.String(),
		CreatedAt:   task.Timestamp(t.CreatedAt).Format(task.TimestampLayout),
		Badge:       DueBadgeFor(t, now),
	}
}

// ListTasksQuery contains the raw filter values, as typed by a user.
type ListTasksQuery struct {
	Status string // "all" or a status name
	Date   string // "all", "overdue", "today", "upcoming"
}

// ListTasksResult contains the matching tasks and the counts behind the
// empty-state and summary messages.
type ListTasksResult struct {
	Tasks   []TaskDTO `json:"tasks"`
	Total   int       `json:"total"`
	Matched int       `json:"matched"`
	Filter  Filter    `json:"-"`
}

// EmptyMessage explains an empty result, or returns "" when tasks matched.
func (r *ListTasksResult) EmptyMessage() string {
	switch {
	case r.Matched > 0:
		return ""
	case r.Total == 0:
		return "No tasks yet"
	default:
		return "No tasks match your filters"
	}
}

// Summary returns e.g. "Showing 2 of 5 tasks".
func (r *ListTasksResult) Summary() string {
	return fmt.Sprintf("Showing %d of %d tasks", r.Matched, r.Total)
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	source TaskSource
	now    func() time.Time
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(source TaskSource, now func() time.Time) *ListTasksHandler {
	if now == nil {
		now = time.Now
	}
	return &ListTasksHandler{source: source, now: now}
}

// Handle parses the filters and returns the matching tasks in store order.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) (*ListTasksResult, error) {
	statusFilter, err := ParseStatusFilter(query.Status)
	if err != nil {
		return nil, err
	}
	dateFilter, err := ParseDateFilter(query.Date)
	if err != nil {
		return nil, err
	}

	now := h.now()
	all := h.source.Tasks()
	filter := Filter{Status: statusFilter, Date: dateFilter}
	matched := FilterTasks(all, filter, now)

	dtos := make([]TaskDTO, 0, len(matched))
	for _, t := range matched {
		dtos = append(dtos, ToDTO(t, now))
	}

	return &ListTasksResult{
		Tasks:   dtos,
		Total:   len(all),
		Matched: len(matched),
		Filter:  filter,
	}, nil
}

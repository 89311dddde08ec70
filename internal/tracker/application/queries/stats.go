package queries

import (
	"context"
	"math"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// Stats summarizes the task list.
type Stats struct {
	Total      int `json:"total"`
	ToDo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	// Overdue counts past-due tasks that are not done.
	Overdue int `json:"overdue"`
	// CompletionRate is Done/Total as a rounded percentage, 0 when empty.
	CompletionRate int `json:"completion_rate"`
}

// ComputeStats derives Stats from tasks at now.
func ComputeStats(tasks []task.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusToDo:
			s.ToDo++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusDone:
			s.Done++
		}
		if IsOverdue(t, now) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Done) / float64(s.Total) * 100))
	}
	return s
}

// GetStatsHandler computes statistics over the current task list.
type GetStatsHandler struct {
	source TaskSource
	now    func() time.Time
}

// NewGetStatsHandler creates a new GetStatsHandler.
func NewGetStatsHandler(source TaskSource, now func() time.Time) *GetStatsHandler {
	if now == nil {
		now = time.Now
	}
	return &GetStatsHandler{source: source, now: now}
}

// Handle returns the statistics.
func (h *GetStatsHandler) Handle(ctx context.Context) (*Stats, error) {
	s := ComputeStats(h.source.Tasks(), h.now())
	return &s, nil
}

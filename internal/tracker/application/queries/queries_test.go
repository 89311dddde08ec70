package queries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

var now = time.Date(2024, time.May, 10, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type staticSource []task.Task

func (s staticSource) Tasks() []task.Task { return s }

func mk(id string, status task.Status, due task.Date) task.Task {
	return task.Task{ID: id, Title: id, Status: status, DueDate: due, CreatedAt: now.Add(-48 * time.Hour)}
}

var (
	yesterday = task.NewDate(2024, time.May, 9)
	today     = task.NewDate(2024, time.May, 10)
	tomorrow  = task.NewDate(2024, time.May, 11)
)

func fixture() []task.Task {
	return []task.Task{
		mk("done-yesterday", task.StatusDone, yesterday),
		mk("todo-yesterday", task.StatusToDo, yesterday),
		mk("wip-today", task.StatusInProgress, today),
		mk("todo-tomorrow", task.StatusToDo, tomorrow),
		mk("done-undated", task.StatusDone, task.Date{}),
	}
}

func ids(tasks []task.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestParseStatusFilter(t *testing.T) {
	for _, in := range []string{"", "all", " ALL "} {
		f, err := ParseStatusFilter(in)
		require.NoError(t, err)
		assert.Equal(t, AllStatuses, f)
		assert.Equal(t, "all", f.String())
	}

	f, err := ParseStatusFilter("in-progress")
	require.NoError(t, err)
	assert.Equal(t, OnlyStatus(task.StatusInProgress), f)
	assert.Equal(t, "In Progress", f.String())

	_, err = ParseStatusFilter("blocked")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseDateFilter(t *testing.T) {
	tests := map[string]DateFilter{
		"":         DateAll,
		"all":      DateAll,
		"Overdue":  DateOverdue,
		"today":    DateToday,
		"upcoming": DateUpcoming,
	}
	for in, want := range tests {
		got, err := ParseDateFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDateFilter("next-week")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilterTasks(t *testing.T) {
	tasks := fixture()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all/all returns everything in order", Filter{AllStatuses, DateAll},
			[]string{"done-yesterday", "todo-yesterday", "wip-today", "todo-tomorrow", "done-undated"}},
		{"overdue ignores status", Filter{AllStatuses, DateOverdue},
			[]string{"done-yesterday", "todo-yesterday", "wip-today"}},
		{"today", Filter{AllStatuses, DateToday}, []string{"wip-today"}},
		{"upcoming", Filter{AllStatuses, DateUpcoming}, []string{"todo-tomorrow"}},
		{"status only", Filter{OnlyStatus(task.StatusDone), DateAll}, []string{"done-yesterday", "done-undated"}},
		{"status and date are combined", Filter{OnlyStatus(task.StatusToDo), DateOverdue}, []string{"todo-yesterday"}},
		{"no match", Filter{OnlyStatus(task.StatusInProgress), DateUpcoming}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTasks(tasks, tt.filter, now)))
		})
	}
}

func TestFilterTasks_UndatedOnlyMatchesAll(t *testing.T) {
	undated := []task.Task{mk("x", task.StatusToDo, task.Date{})}

	for _, f := range []DateFilter{DateOverdue, DateToday, DateUpcoming} {
		assert.Empty(t, FilterTasks(undated, Filter{Date: f}, now), f)
	}
	assert.Len(t, FilterTasks(undated, Filter{Date: DateAll}, now), 1)
}

func TestFilterTasks_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 22:00 on May 9 local time is already May 10 in UTC
	localNow := time.Date(2024, time.May, 9, 22, 0, 0, 0, loc)
	tasks := []task.Task{mk("due-9th", task.StatusToDo, yesterday)}

	assert.Len(t, FilterTasks(tasks, Filter{Date: DateToday}, localNow), 1)
}

func TestComputeStats(t *testing.T) {
	t.Run("counts and done-yesterday is not overdue", func(t *testing.T) {
		s := ComputeStats(fixture(), now)

		assert.Equal(t, Stats{
			Total:          5,
			ToDo:           2,
			InProgress:     1,
			Done:           2,
			Overdue:        2,
			CompletionRate: 40,
		}, s)
	})

	t.Run("rounds the completion rate", func(t *testing.T) {
		tasks := []task.Task{
			mk("a", task.StatusDone, task.Date{}),
			mk("b", task.StatusDone, task.Date{}),
			mk("c", task.StatusToDo, task.Date{}),
		}
		assert.Equal(t, 67, ComputeStats(tasks, now).CompletionRate)
	})

	t.Run("empty store", func(t *testing.T) {
		assert.Equal(t, Stats{}, ComputeStats(nil, now))
	})
}

func TestDueBadgeFor(t *testing.T) {
	tasks := fixture()

	assert.Equal(t, BadgeOverdue, DueBadgeFor(tasks[0], now), "past due even when done")
	assert.Equal(t, BadgeOverdue, DueBadgeFor(tasks[1], now))
	assert.Equal(t, BadgeOverdueToday, DueBadgeFor(tasks[2], now), "due today and the day has begun")
	assert.Equal(t, BadgeNone, DueBadgeFor(tasks[3], now))
	assert.Equal(t, BadgeNone, DueBadgeFor(tasks[4], now))

	t.Run("due today at the first instant of the day", func(t *testing.T) {
		early := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, BadgeToday, DueBadgeFor(tasks[2], early))
	})

	assert.Equal(t, "Overdue", BadgeOverdue.Label())
	assert.Equal(t, "Today", BadgeToday.Label())
	assert.Equal(t, "Overdue • Today", BadgeOverdueToday.Label())
	assert.Empty(t, BadgeNone.Label())
}

func TestToDTO_CreatedAtMatchesStoredForm(t *testing.T) {
	tsk := mk("a", task.StatusToDo, task.Date{})
	tsk.CreatedAt = time.Date(2024, time.May, 8, 16, 0, 0, 456789000, time.FixedZone("UTC+2", 2*60*60))

	assert.Equal(t, "2024-05-08T14:00:00.456Z", ToDTO(tsk, now).CreatedAt)
}

func TestListTasksHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("filters and counts", func(t *testing.T) {
		h := NewListTasksHandler(staticSource(fixture()), clock)

		result, err := h.Handle(ctx, ListTasksQuery{Status: "todo", Date: "all"})
		require.NoError(t, err)

		require.Len(t, result.Tasks, 2)
		assert.Equal(t, "todo-yesterday", result.Tasks[0].ID)
		assert.Equal(t, "To Do", result.Tasks[0].Status)
		assert.Equal(t, "2024-05-09", result.Tasks[0].DueDate)
		assert.Equal(t, BadgeOverdue, result.Tasks[0].Badge)
		assert.Equal(t, 5, result.Total)
		assert.Equal(t, 2, result.Matched)
		assert.Equal(t, "Showing 2 of 5 tasks", result.Summary())
		assert.Empty(t, result.EmptyMessage())
	})

	t.Run("empty store message", func(t *testing.T) {
		h := NewListTasksHandler(staticSource(nil), clock)

		result, err := h.Handle(ctx, ListTasksQuery{})
		require.NoError(t, err)
		assert.Equal(t, "No tasks yet", result.EmptyMessage())
	})

	t.Run("filtered out message", func(t *testing.T) {
		h := NewListTasksHandler(staticSource(fixture()), clock)

		result, err := h.Handle(ctx, ListTasksQuery{Status: "in progress", Date: "upcoming"})
		require.NoError(t, err)
		assert.Empty(t, result.Tasks)
		assert.Equal(t, "No tasks match your filters", result.EmptyMessage())
	})

	t.Run("invalid filters", func(t *testing.T) {
		h := NewListTasksHandler(staticSource(nil), clock)

		_, err := h.Handle(ctx, ListTasksQuery{Status: "blocked"})
		assert.ErrorIs(t, err, ErrInvalidFilter)

		_, err = h.Handle(ctx, ListTasksQuery{Date: "someday"})
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})
}

func TestGetStatsHandler(t *testing.T) {
	h := NewGetStatsHandler(staticSource(fixture()), clock)

	stats, err := h.Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Overdue)
}

func TestGetTaskHandler(t *testing.T) {
	h := NewGetTaskHandler(staticSource(fixture()), clock)

	result, err := h.Handle(context.Background(), GetTaskQuery{TaskID: "wip-today"})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "In Progress", result.Task.Status)
	assert.Equal(t, BadgeOverdueToday, result.Task.Badge)

	result, err = h.Handle(context.Background(), GetTaskQuery{TaskID: "missing"})
	require.NoError(t, err)
	assert.False(t, result.Found)
}

package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// ErrInvalidFilter is returned for an unknown status or date filter.
var ErrInvalidFilter = errors.New("invalid filter")

// StatusFilter selects tasks by status. The zero value matches every task.
type StatusFilter struct {
	status task.Status
	set    bool
}

// AllStatuses matches every task.
var AllStatuses = StatusFilter{}

// OnlyStatus matches tasks with exactly status s.
func OnlyStatus(s task.Status) StatusFilter {
	return StatusFilter{status: s, set: true}
}

// ParseStatusFilter accepts "all" (or empty) and every form ParseStatus accepts.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if v := strings.ToLower(strings.TrimSpace(s)); v == "" || v == "all" {
		return AllStatuses, nil
	}
	st, err := task.ParseStatus(s)
	if err != nil {
		return StatusFilter{}, fmt.Errorf("%w: status %q", ErrInvalidFilter, s)
	}
	return OnlyStatus(st), nil
}

// Matches reports whether t passes the filter.
func (f StatusFilter) Matches(t task.Task) bool {
	return !f.set || t.Status == f.status
}

func (f StatusFilter) String() string {
	if !f.set {
		return "all"
	}
	return f.status.String()
}

// DateFilter selects tasks by due date relative to now.
type DateFilter string

const (
	DateAll      DateFilter = "all"
	DateOverdue  DateFilter = "overdue"
	DateToday    DateFilter = "today"
	DateUpcoming DateFilter = "upcoming"
)

// DateFilters lists the date filters in display order.
var DateFilters = []DateFilter{DateAll, DateOverdue, DateToday, DateUpcoming}

// ParseDateFilter accepts one of the DateFilters; empty means all.
func ParseDateFilter(s string) (DateFilter, error) {
	v := DateFilter(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return DateAll, nil
	}
	for _, f := range DateFilters {
		if v == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: date %q (use all, overdue, today or upcoming)", ErrInvalidFilter, s)
}

// Matches reports whether t passes the filter at now. Tasks without a due
// date only pass DateAll.
func (f DateFilter) Matches(t task.Task, now time.Time) bool {
	switch f {
	case DateOverdue:
		return IsPastDue(t, now)
	case DateToday:
		return IsDueToday(t, now)
	case DateUpcoming:
		return IsUpcoming(t, now)
	default:
		return true
	}
}

// Filter combines a status and a date filter.
type Filter struct {
	Status StatusFilter
	Date   DateFilter
}

// IsAll reports whether the filter matches every task.
func (f Filter) IsAll() bool {
	return !f.Status.set && (f.Date == DateAll || f.Date == "")
}

// FilterTasks returns the tasks passing both filters, in store order.
func FilterTasks(tasks []task.Task, f Filter, now time.Time) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Status.Matches(t) && f.Date.Matches(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// The due date is compared as midnight at its start in now's location, so a
// task due today is past due as soon as the day has begun.

// IsPastDue reports whether t has a due date strictly before now,
// whatever its status.
func IsPastDue(t task.Task, now time.Time) bool {
	return t.HasDueDate() && t.DueDate.In(now.Location()).Before(now)
}

// IsDueToday reports whether t is due on now's calendar day.
func IsDueToday(t task.Task, now time.Time) bool {
	return t.HasDueDate() && t.DueDate.Equal(task.DateOf(now))
}

// IsUpcoming reports whether t has a due date strictly after now.
func IsUpcoming(t task.Task, now time.Time) bool {
	return t.HasDueDate() && t.DueDate.In(now.Location()).After(now)
}

// IsOverdue reports whether t is past due and not done.
func IsOverdue(t task.Task, now time.Time) bool {
	return !t.IsDone() && IsPastDue(t, now)
}

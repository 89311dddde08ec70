package queries

import (
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// DueBadge is the deadline marker shown next to a task.
type DueBadge string

const (
	BadgeNone         DueBadge = ""
	BadgeOverdue      DueBadge = "overdue"
	BadgeToday        DueBadge = "today"
	BadgeOverdueToday DueBadge = "overdue-today"
)

// DueBadgeFor marks past-due tasks as overdue, whatever their status, and
// tasks due on now's day as today. A task due today is past due once the day
// has begun, so it carries both markers.
func DueBadgeFor(t task.Task, now time.Time) DueBadge {
	overdue, today := IsPastDue(t, now), IsDueToday(t, now)
	switch {
	case overdue && today:
		return BadgeOverdueToday
	case overdue:
		return BadgeOverdue
	case today:
		return BadgeToday
	default:
		return BadgeNone
	}
}

// Label returns the badge text, e.g. "Overdue".
func (b DueBadge) Label() string {
	switch b {
	case BadgeOverdue:
		return "Overdue"
	case BadgeToday:
		return "Today"
	case BadgeOverdueToday:
		return "Overdue • Today"
	default:
		return ""
	}
}

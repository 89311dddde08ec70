package task

import (
	"fmt"
	"strings"
)

// Status represents the workflow stage of a task.
type Status int

const (
	StatusToDo Status = iota
	StatusInProgress
	StatusDone
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

func (s Status) String() string {
	switch s {
	case StatusToDo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s >= StatusToDo && s <= StatusDone
}

// ParseStatus accepts the display names as well as the short forms used on
// the command line (todo, in-progress, in_progress, done).
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalized)

	switch normalized {
	case "todo":
		return StatusToDo, nil
	case "inprogress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return StatusToDo, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// MarshalText encodes the status as its display name.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes only the exact display names.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range Statuses {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, string(text))
}

package task

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle    = errors.New("task title cannot be empty")
	ErrInvalidStatus = errors.New("invalid task status")
	ErrInvalidDate   = errors.New("invalid due date")
)

// TimestampLayout is the text form of CreatedAt: ISO 8601 in UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp reduces t to what TimestampLayout can carry, so a created task
// compares equal to itself after a save and reload.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Task is a single tracked unit of work.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	DueDate     Date
	CreatedAt   time.Time
}

// Fields holds the editable values of a task as submitted by a form.
type Fields struct {
	Title       string
	Description string
	Status      Status
	DueDate     Date
}

// Validate checks the fields before they reach a mutation.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	if !f.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Changes describes an update. Nil members are left untouched.
type Changes struct {
	Title       *string
	Description *string
	Status      *Status
	DueDate     *Date
}

// ChangesFrom builds a Changes value that replaces every editable field.
func ChangesFrom(f Fields) Changes {
	return Changes{
		Title:       &f.Title,
		Description: &f.Description,
		Status:      &f.Status,
		DueDate:     &f.DueDate,
	}
}

// IsEmpty reports whether no member is set.
func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Status == nil && c.DueDate == nil
}

// Validate checks the members that are set.
func (c Changes) Validate() error {
	if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
		return ErrEmptyTitle
	}
	if c.Status != nil && !c.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// FieldNames returns the names of the members that are set.
func (c Changes) FieldNames() []string {
	var names []string
	if c.Title != nil {
		names = append(names, "title")
	}
	if c.Description != nil {
		names = append(names, "description")
	}
	if c.Status != nil {
		names = append(names, "status")
	}
	if c.DueDate != nil {
		names = append(names, "due_date")
	}
	return names
}

// New creates a task from validated fields. createdAt is kept as a
// Timestamp.
func New(id string, f Fields, createdAt time.Time) (Task, error) {
	if err := f.Validate(); err != nil {
		return Task{}, err
	}
	return Task{
		ID:          id,
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Status:      f.Status,
		DueDate:     f.DueDate,
		CreatedAt:   Timestamp(createdAt),
	}, nil
}

// Apply returns a copy of t with the changes applied. ID and CreatedAt are kept.
func (t Task) Apply(c Changes) (Task, error) {
	if err := c.Validate(); err != nil {
		return t, err
	}
	if c.Title != nil {
		t.Title = strings.TrimSpace(*c.Title)
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Status != nil {
		t.Status = *c.Status
	}
	if c.DueDate != nil {
		t.DueDate = *c.DueDate
	}
	return t, nil
}

// Fields returns the editable values of t.
func (t Task) Fields() Fields {
	return Fields{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
	}
}

// HasDueDate reports whether a deadline is set.
func (t Task) HasDueDate() bool { return !t.DueDate.IsZero() }

// IsDone reports whether the task is completed.
func (t Task) IsDone() bool { return t.Status == StatusDone }

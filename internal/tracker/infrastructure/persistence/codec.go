package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

// ErrMalformedData is returned when a stored document cannot be decoded
// into a valid task list.
var ErrMalformedData = errors.New("malformed task data")

// CreatedAtLayout is the wire format of createdAt.
const CreatedAtLayout = task.TimestampLayout

// Record is the JSON shape of a task, shared by storage and export.
type Record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	CreatedAt   string `json:"createdAt"`
}

// ToRecord converts a task to its wire shape.
func ToRecord(t task.Task) Record {
	return Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		DueDate:     t.DueDate.String(),
		CreatedAt:   task.Timestamp(t.CreatedAt).Format(CreatedAtLayout),
	}
}

// FromRecord converts a wire record back to a task.
func FromRecord(r Record) (task.Task, error) {
	if r.ID == "" {
		return task.Task{}, fmt.Errorf("%w: task without id", ErrMalformedData)
	}

	var status task.Status
	if err := status.UnmarshalText([]byte(r.Status)); err != nil {
		return task.Task{}, fmt.Errorf("%w: task %s: %v", ErrMalformedData, r.ID, err)
	}

	due, err := task.ParseDate(r.DueDate)
	if err != nil {
		return task.Task{}, fmt.Errorf("%w: task %s: %v", ErrMalformedData, r.ID, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("%w: task %s: createdAt %q", ErrMalformedData, r.ID, r.CreatedAt)
	}

	return task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		DueDate:     due,
		CreatedAt:   task.Timestamp(createdAt),
	}, nil
}

// Encode serializes tasks as a JSON array, preserving order. An empty list
// encodes as [].
func Encode(tasks []task.Task) ([]byte, error) {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, ToRecord(t))
	}
	return json.Marshal(records)
}

// EncodeIndent is Encode with indentation, used for export.
func EncodeIndent(tasks []task.Task) ([]byte, error) {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, ToRecord(t))
	}
	return json.MarshalIndent(records, "", "  ")
}

// Decode parses a JSON array of records. Any invalid record or duplicate
// id rejects the whole document.
func Decode(data []byte) ([]task.Task, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	tasks := make([]task.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		t, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrMalformedData, t.ID)
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

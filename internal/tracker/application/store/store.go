// Package store holds the session's ordered task list. Every effective
// mutation is written through to the repository and announced on the
// event bus. A Store is not safe for concurrent use.
package store

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/taskdeck/internal/shared/domain"
	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

// Snapshot is an immutable view of the store. Revision increases by one
// with every effective mutation.
type Snapshot struct {
	Revision uint64
	Tasks    []task.Task
}

// Find returns the task with id.
func (s Snapshot) Find(id string) (task.Task, bool) {
	i := indexOf(s.Tasks, id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.Tasks[i], true
}

// Store owns the task list.
type Store struct {
	repo      task.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	tasks    []task.Task
	revision uint64
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source for new tasks.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithPublisher sets where domain events are published.
func WithPublisher(p eventbus.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open loads the persisted tasks. Missing or unreadable data starts the
// session with an empty list; Open never fails because of stored data.
func Open(ctx context.Context, repo task.Repository, opts ...Option) *Store {
	s := &Store{
		repo:      repo,
		publisher: eventbus.NoopPublisher{},
		logger:    slog.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := repo.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "starting with an empty task list",
			observability.ErrorKey, err,
		)
		tasks = nil
	}
	s.tasks = tasks

	s.logger.DebugContext(ctx, "task store opened", "tasks", len(s.tasks))
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Revision: s.revision, Tasks: slices.Clone(s.tasks)}
}

// Tasks returns a copy of the task list in store order.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Revision returns the number of effective mutations so far.
func (s *Store) Revision() uint64 {
	return s.revision
}

// Find returns the task with id.
func (s *Store) Find(id string) (task.Task, bool) {
	i := indexOf(s.tasks, id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Create appends a new task. Fields with an empty title are ignored.
func (s *Store) Create(ctx context.Context, f task.Fields) Snapshot {
	t, err := task.New(s.uniqueID(), f, s.now())
	if err != nil {
		s.logger.DebugContext(ctx, "create ignored", observability.ErrorKey, err)
		return s.Snapshot()
	}

	s.tasks = append(s.tasks, t)
	ev := task.NewTaskCreated(t.ID, t.Title)
	s.commit(ctx, &ev, &ev.BaseEvent)
	return s.Snapshot()
}

// Update applies c to the task with id in place. Unknown ids, empty
// changes and changes that would blank the title are ignored.
func (s *Store) Update(ctx context.Context, id string, c task.Changes) Snapshot {
	i := indexOf(s.tasks, id)
	if i < 0 || c.IsEmpty() {
		return s.Snapshot()
	}

	updated, err := s.tasks[i].Apply(c)
	if err != nil {
		s.logger.DebugContext(ctx, "update ignored", "task_id", id, observability.ErrorKey, err)
		return s.Snapshot()
	}

	s.tasks[i] = updated
	ev := task.NewTaskUpdated(id, c.FieldNames())
	s.commit(ctx, &ev, &ev.BaseEvent)
	return s.Snapshot()
}

// SetStatus changes only the status of the task with id.
func (s *Store) SetStatus(ctx context.Context, id string, status task.Status) Snapshot {
	i := indexOf(s.tasks, id)
	if i < 0 || !status.IsValid() {
		return s.Snapshot()
	}

	from := s.tasks[i].Status
	s.tasks[i].Status = status
	ev := task.NewTaskStatusChanged(id, from, status)
	s.commit(ctx, &ev, &ev.BaseEvent)
	return s.Snapshot()
}

// Delete removes the task with id.
func (s *Store) Delete(ctx context.Context, id string) Snapshot {
	i := indexOf(s.tasks, id)
	if i < 0 {
		return s.Snapshot()
	}

	s.tasks = slices.Delete(s.tasks, i, i+1)
	ev := task.NewTaskDeleted(id)
	s.commit(ctx, &ev, &ev.BaseEvent)
	return s.Snapshot()
}

// commit bumps the revision, writes the full list and publishes event.
// A failed write is logged; the in-memory list stays authoritative.
func (s *Store) commit(ctx context.Context, event domain.DomainEvent, base *domain.BaseEvent) {
	s.revision++
	logger := observability.LogOperation(s.logger, event.RoutingKey())

	if err := s.repo.Save(ctx, s.tasks); err != nil {
		logger.WarnContext(ctx, "failed to persist tasks",
			"revision", s.revision,
			observability.ErrorKey, err,
		)
	}

	base.SetMetadata(domain.EventMetadata{
		CorrelationID: observability.CorrelationIDFromContext(ctx),
		Revision:      s.revision,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			observability.ErrorKey, err,
		)
	}
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && indexOf(s.tasks, id) < 0 {
			return id
		}
	}
}

func indexOf(tasks []task.Task, id string) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool { return t.ID == id })
}

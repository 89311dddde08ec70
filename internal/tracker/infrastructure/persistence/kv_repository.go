package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/kv"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

// DefaultKey is the storage key holding the task list.
const DefaultKey = "tasks"

// KVRepository stores the whole task list as one JSON document under a
// single key of a kv.Storage.
type KVRepository struct {
	storage kv.Storage
	key     string
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewKVRepository creates a repository over storage. An empty key means
// DefaultKey.
func NewKVRepository(storage kv.Storage, key string, logger *slog.Logger, metrics observability.Metrics) *KVRepository {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &KVRepository{
		storage: storage,
		key:     key,
		logger:  logger.With("storage_key", key),
		metrics: metrics,
	}
}

// Key returns the storage key.
func (r *KVRepository) Key() string { return r.key }

// Load returns the stored tasks. A missing key yields an empty list.
// Undecodable data is reported as ErrMalformedData.
func (r *KVRepository) Load(ctx context.Context) ([]task.Task, error) {
	var data []byte
	err := observability.TimeOperation(r.logger, r.metrics, "storage.load", func() error {
		var err error
		data, err = r.storage.Get(ctx, r.key)
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if data == nil {
		r.metrics.Gauge(observability.MetricTasksStored, 0)
		return nil, nil
	}

	tasks, err := Decode(data)
	if err != nil {
		return nil, err
	}
	r.metrics.Gauge(observability.MetricTasksStored, float64(len(tasks)))
	return tasks, nil
}

// Save overwrites the stored document with tasks.
func (r *KVRepository) Save(ctx context.Context, tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	err = observability.TimeOperation(r.logger, r.metrics, "storage.save", func() error {
		return r.storage.Set(ctx, r.key, data)
	})
	if err != nil {
		r.metrics.Counter(observability.MetricStorageErrors, 1)
		return fmt.Errorf("save tasks: %w", err)
	}

	r.metrics.Counter(observability.MetricStorageWrites, 1)
	r.metrics.Gauge(observability.MetricTasksStored, float64(len(tasks)))
	r.metrics.Histogram(observability.MetricStorageDocumentBytes, float64(len(data)))
	return nil
}

var _ task.Repository = (*KVRepository)(nil)

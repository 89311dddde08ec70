package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/kv"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/commands"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/queries"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/store"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/subscribers"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/infrastructure/persistence"
	"github.com/felixgeelhaar/taskdeck/pkg/config"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics

	// Persistence
	Storage  kv.Storage
	TaskRepo *persistence.KVRepository

	// Events
	EventBus           *eventbus.InProcessEventBus
	ActivitySubscriber *subscribers.ActivitySubscriber

	// Store is the session's task list.
	Store *store.Store

	// Task Command Handlers
	CreateTaskHandler *commands.CreateTaskHandler
	UpdateTaskHandler *commands.UpdateTaskHandler
	SetStatusHandler  *commands.SetStatusHandler
	DeleteTaskHandler *commands.DeleteTaskHandler

	// Task Query Handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler
	GetStatsHandler  *queries.GetStatsHandler
}

// Option customizes container construction, mostly for tests.
type Option func(*options)

type options struct {
	storage kv.Storage
	now     func() time.Time
	newID   func() string
}

// WithStorage uses s instead of the backend named in the configuration.
func WithStorage(s kv.Storage) Option {
	return func(o *options) { o.storage = s }
}

// WithClock replaces time.Now for the store and the date-dependent queries.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the task id generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// NewContainer opens the configured storage backend, hydrates the store and
// wires all handlers. Only a backend that cannot be constructed is an error;
// unreadable stored data starts the session empty.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
	}

	storage := o.storage
	if storage == nil {
		var err error
		storage, err = kv.Open(ctx, StorageConfig(cfg), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
		}
		logger.Debug("storage opened", "backend", cfg.Storage)
	}
	c.Storage = storage
	c.TaskRepo = persistence.NewKVRepository(storage, cfg.StorageKey, logger, c.Metrics)

	// Wire event bus and subscribers
	c.EventBus = eventbus.NewInProcessEventBus(logger)
	c.ActivitySubscriber = subscribers.NewActivitySubscriber(logger, c.Metrics)
	c.EventBus.RegisterConsumer(c.ActivitySubscriber)
	registry := c.EventBus.GetRegistry()
	logger.Debug("event consumers registered",
		"routing_keys", registry.GetAllEventTypes(),
		"consumers", registry.ConsumerCount(),
	)

	storeOpts := []store.Option{
		store.WithLogger(logger),
		store.WithPublisher(c.EventBus),
		store.WithClock(o.now),
	}
	if o.newID != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(o.newID))
	}
	c.Store = store.Open(ctx, c.TaskRepo, storeOpts...)

	// Create task command handlers
	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.Store)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(c.Store)
	c.SetStatusHandler = commands.NewSetStatusHandler(c.Store)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.Store)

	// Create task query handlers
	c.ListTasksHandler = queries.NewListTasksHandler(c.Store, o.now)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.Store, o.now)
	c.GetStatsHandler = queries.NewGetStatsHandler(c.Store, o.now)

	return c, nil
}

// StorageConfig maps application settings onto the kv backend configuration.
func StorageConfig(cfg *config.Config) kv.Config {
	return kv.Config{
		Backend: kv.Backend(cfg.Storage),
		DataDir: cfg.DataDir,
		Database: database.Config{
			URL:             cfg.DatabaseURL,
			SQLitePath:      cfg.SQLitePath,
			ApplicationName: "taskdeck",
			ConnectTimeout:  cfg.StorageTimeout,
		},
		RedisURL:       cfg.RedisURL,
		RedisNamespace: cfg.RedisNamespace,
		WebDAV: kv.WebDAVConfig{
			URL:      cfg.WebDAVURL,
			Username: cfg.WebDAVUsername,
			Password: cfg.WebDAVPassword,
		},
		Timeout:            cfg.StorageTimeout,
		BreakerMaxFailures: uint32(cfg.BreakerMaxFailures),
		BreakerTimeout:     cfg.BreakerTimeout,
	}
}

// NewLogger builds the application logger from configuration. Production
// defaults to JSON at info level; explicit LOG_LEVEL and LOG_FORMAT win.
func NewLogger(cfg *config.Config, version string) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	if cfg.LogLevel != "" {
		logCfg.Level = observability.LogLevel(cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		logCfg.Format = observability.LogFormat(cfg.LogFormat)
	}
	if version != "" {
		logCfg.ServiceVersion = version
	}
	return observability.NewLogger(logCfg)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventBus != nil {
		if err := c.EventBus.Close(); err != nil {
			c.Logger.Warn("error closing event bus", "error", err)
		}
	}

	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil {
			c.Logger.Warn("error closing storage", "backend", c.Config.Storage, "error", err)
		} else {
			c.Logger.Debug("storage closed", "backend", c.Config.Storage)
		}
	}
}

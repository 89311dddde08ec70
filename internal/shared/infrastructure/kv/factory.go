package kv

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/database"
)

// Config selects and configures a storage backend.
type Config struct {
	Backend Backend

	// DataDir holds one file per key for the file backend.
	DataDir string

	// Database configures the sqlite and postgres backends. The matching
	// driver package must be imported for its side effects.
	Database database.Config

	RedisURL       string
	RedisNamespace string

	WebDAV WebDAVConfig

	// Timeout, BreakerMaxFailures and BreakerTimeout configure the guard
	// placed in front of remote backends.
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// Open builds the configured backend. Remote backends (postgres, redis,
// webdav) are wrapped in a GuardedStorage.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStorage(), nil

	case BackendFile:
		return NewFileStorage(cfg.DataDir)

	case BackendSQLite, BackendPostgres:
		dbCfg := cfg.Database
		dbCfg.Driver = database.Driver(cfg.Backend)
		if dbCfg.Driver == database.DriverSQLite && dbCfg.SQLitePath == "" {
			dbCfg.SQLitePath = database.DefaultSQLitePath()
		}
		if dbCfg.Driver == database.DriverPostgres && dbCfg.URL == "" {
			return nil, fmt.Errorf("postgres storage requires DATABASE_URL")
		}

		conn, err := database.NewConnection(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		store, err := NewSQLStorage(ctx, conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if cfg.Backend == BackendPostgres {
			return NewGuardedStorage(store, guardConfig(cfg), logger), nil
		}
		return store, nil

	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis storage requires REDIS_URL")
		}
		store, err := DialRedis(cfg.RedisURL, cfg.RedisNamespace)
		if err != nil {
			return nil, err
		}
		return NewGuardedStorage(store, guardConfig(cfg), logger), nil

	case BackendWebDAV:
		store, err := NewWebDAVStorage(cfg.WebDAV)
		if err != nil {
			return nil, err
		}
		return NewGuardedStorage(store, guardConfig(cfg), logger), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Backend)
	}
}

func guardConfig(cfg Config) GuardConfig {
	g := DefaultGuardConfig(string(cfg.Backend))
	if cfg.Timeout > 0 {
		g.Timeout = cfg.Timeout
	}
	if cfg.BreakerMaxFailures > 0 {
		g.MaxFailures = cfg.BreakerMaxFailures
	}
	if cfg.BreakerTimeout > 0 {
		g.OpenTimeout = cfg.BreakerTimeout
	}
	return g
}

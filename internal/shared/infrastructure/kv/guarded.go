package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// GuardConfig configures the circuit breaker and per-call timeout placed in
// front of a remote backend.
type GuardConfig struct {
	// Name identifies the breaker in logs.
	Name string

	// Timeout bounds every call. Zero disables the deadline.
	Timeout time.Duration

	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32

	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultGuardConfig returns the settings used when none are configured.
func DefaultGuardConfig(name string) GuardConfig {
	return GuardConfig{
		Name:        name,
		Timeout:     5 * time.Second,
		MaxFailures: 3,
		OpenTimeout: 30 * time.Second,
	}
}

// GuardedStorage wraps a Storage with a circuit breaker. While the breaker
// is open every call fails fast with ErrUnavailable.
type GuardedStorage struct {
	inner   Storage
	breaker *gobreaker.CircuitBreaker[[]byte]
	timeout time.Duration
}

// NewGuardedStorage wraps inner.
func NewGuardedStorage(inner Storage, cfg GuardConfig, logger *slog.Logger) *GuardedStorage {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 1
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrKeyNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("storage circuit breaker state changed",
				"storage", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &GuardedStorage{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		timeout: cfg.Timeout,
	}
}

// State reports the breaker state.
func (s *GuardedStorage) State() gobreaker.State {
	return s.breaker.State()
}

func (s *GuardedStorage) execute(ctx context.Context, fn func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	val, err := s.breaker.Execute(func() ([]byte, error) {
		return fn(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.breaker.Name(), err)
	}
	return val, err
}

func (s *GuardedStorage) Get(ctx context.Context, key string) ([]byte, error) {
	return s.execute(ctx, func(ctx context.Context) ([]byte, error) {
		return s.inner.Get(ctx, key)
	})
}

func (s *GuardedStorage) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.execute(ctx, func(ctx context.Context) ([]byte, error) {
		return nil, s.inner.Set(ctx, key, value)
	})
	return err
}

func (s *GuardedStorage) Delete(ctx context.Context, key string) error {
	_, err := s.execute(ctx, func(ctx context.Context) ([]byte, error) {
		return nil, s.inner.Delete(ctx, key)
	})
	return err
}

func (s *GuardedStorage) Close() error {
	return s.inner.Close()
}

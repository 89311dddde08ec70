// Package kv provides named-entry storage backends. Every backend stores an
// opaque byte value under a string key and overwrites it in full on Set.
package kv

import (
	"context"
	"errors"
	"fmt"
)

const (
	// KeyMaxLength is the maximum length of a storage key.
	KeyMaxLength = 256

	// ValueMaxSize is the maximum size of a stored value in bytes.
	ValueMaxSize = 8 * 1024 * 1024
)

var (
	ErrKeyNotFound  = errors.New("storage key not found")
	ErrKeyInvalid   = errors.New("storage key is empty or too long")
	ErrValueTooBig  = errors.New("storage value exceeds maximum size")
	ErrUnavailable  = errors.New("storage backend unavailable")
	ErrUnknownStore = errors.New("unknown storage backend")
)

// Storage is a durable key-value store holding whole values per key.
type Storage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Backend names a Storage implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendWebDAV   Backend = "webdav"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendMemory, BackendFile, BackendSQLite, BackendPostgres, BackendRedis, BackendWebDAV:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStore, s)
	}
}

func validateKey(key string) error {
	if key == "" || len(key) > KeyMaxLength {
		return ErrKeyInvalid
	}
	return nil
}

func validateEntry(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if len(value) > ValueMaxSize {
		return ErrValueTooBig
	}
	return nil
}

package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps values in Redis. Keys are namespaced:
// {namespace}:{key}
type RedisStorage struct {
	client    *redis.Client
	namespace string
}

// NewRedisStorage creates a storage over an existing client.
func NewRedisStorage(client *redis.Client, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = "taskdeck"
	}
	return &RedisStorage{client: client, namespace: namespace}
}

// DialRedis parses url and returns a storage with its own client. The
// connection is not checked here; the first command reports any failure.
func DialRedis(url, namespace string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return NewRedisStorage(redis.NewClient(opt), namespace), nil
}

func (s *RedisStorage) namespaceKey(key string) string {
	return s.namespace + ":" + key
}

func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	val, err := s.client.Get(ctx, s.namespaceKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores value without expiration.
func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := validateEntry(key, value); err != nil {
		return err
	}
	return s.client.Set(ctx, s.namespaceKey(key), value, 0).Err()
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return s.client.Del(ctx, s.namespaceKey(key)).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}

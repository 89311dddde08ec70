package kv

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-webdav"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/database/sqlite"
)

func runStorageContract(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "tasks", []byte(`[{"id":"1"}]`)))

		val, err := s.Get(ctx, "tasks")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(val))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "tasks", []byte(`[]`)))

		val, err := s.Get(ctx, "tasks")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(val))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "tasks"))
		require.NoError(t, s.Delete(ctx, "tasks"))

		_, err := s.Get(ctx, "tasks")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("invalid key", func(t *testing.T) {
		assert.ErrorIs(t, s.Set(ctx, "", []byte("x")), ErrKeyInvalid)
		_, err := s.Get(ctx, strings.Repeat("k", KeyMaxLength+1))
		assert.ErrorIs(t, err, ErrKeyInvalid)
	})
}

func TestMemoryStorage(t *testing.T) {
	runStorageContract(t, NewMemoryStorage())
}

func TestMemoryStorage_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStorage(t *testing.T) {
	s, err := NewFileStorage(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	runStorageContract(t, s)
}

func TestFileStorage_WritesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "tasks", []byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())
}

func TestSQLStorage_SQLite(t *testing.T) {
	ctx := context.Background()

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "kv.db"),
	})
	require.NoError(t, err)

	s, err := NewSQLStorage(ctx, conn)
	require.NoError(t, err)
	defer s.Close()

	runStorageContract(t, s)
}

func TestWebDAVStorage(t *testing.T) {
	srv := httptest.NewServer(&webdav.Handler{FileSystem: webdav.LocalFileSystem(t.TempDir())})
	defer srv.Close()

	s, err := NewWebDAVStorage(WebDAVConfig{URL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)

	runStorageContract(t, s)
}

func TestNewWebDAVStorage_RequiresURL(t *testing.T) {
	_, err := NewWebDAVStorage(WebDAVConfig{})
	assert.Error(t, err)
}

type failingStorage struct {
	MemoryStorage
	calls int
	err   error
}

func (f *failingStorage) Get(ctx context.Context, key string) ([]byte, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	f.calls++
	return f.err
}

func TestGuardedStorage_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	inner := &failingStorage{err: errors.New("connection refused")}

	s := NewGuardedStorage(inner, GuardConfig{
		Name:        "test",
		MaxFailures: 2,
		OpenTimeout: time.Minute,
	}, nil)

	for i := 0; i < 2; i++ {
		err := s.Set(ctx, "tasks", []byte("[]"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, s.State())

	_, err := s.Get(ctx, "tasks")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, inner.calls)
}

func TestGuardedStorage_NotFoundIsNotAFailure(t *testing.T) {
	ctx := context.Background()
	inner := &failingStorage{err: ErrKeyNotFound}

	s := NewGuardedStorage(inner, GuardConfig{Name: "test", MaxFailures: 1, OpenTimeout: time.Minute}, nil)

	for i := 0; i < 3; i++ {
		_, err := s.Get(ctx, "tasks")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, s.State())
}

func TestGuardedStorage_Passthrough(t *testing.T) {
	runStorageContract(t, NewGuardedStorage(NewMemoryStorage(), DefaultGuardConfig("memory"), nil))
}

func TestRedisStorage_UnreachableTripsBreaker(t *testing.T) {
	ctx := context.Background()

	redisStore, err := DialRedis("redis://127.0.0.1:1/0", "test")
	require.NoError(t, err)

	s := NewGuardedStorage(redisStore, GuardConfig{
		Name:        "redis",
		Timeout:     2 * time.Second,
		MaxFailures: 1,
		OpenTimeout: time.Minute,
	}, nil)
	defer s.Close()

	_, err = s.Get(ctx, "tasks")
	require.Error(t, err)

	err = s.Set(ctx, "tasks", []byte("[]"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDialRedis_InvalidURL(t *testing.T) {
	_, err := DialRedis("not-a-url", "")
	assert.Error(t, err)
}

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"memory", "file", "sqlite", "postgres", "redis", "webdav"} {
		b, err := ParseBackend(name)
		require.NoError(t, err)
		assert.Equal(t, Backend(name), b)
	}

	_, err := ParseBackend("s3")
	assert.ErrorIs(t, err, ErrUnknownStore)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := Open(ctx, Config{Backend: BackendMemory}, nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStorage{}, s)
	})

	t.Run("file", func(t *testing.T) {
		s, err := Open(ctx, Config{Backend: BackendFile, DataDir: t.TempDir()}, nil)
		require.NoError(t, err)
		assert.IsType(t, &FileStorage{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := Open(ctx, Config{
			Backend:  BackendSQLite,
			Database: database.Config{SQLitePath: filepath.Join(t.TempDir(), "kv.db")},
		}, nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQLStorage{}, s)
	})

	t.Run("redis wrapped in guard", func(t *testing.T) {
		s, err := Open(ctx, Config{Backend: BackendRedis, RedisURL: "redis://127.0.0.1:1/0"}, nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &GuardedStorage{}, s)
	})

	t.Run("missing remote settings", func(t *testing.T) {
		_, err := Open(ctx, Config{Backend: BackendRedis}, nil)
		assert.Error(t, err)

		_, err = Open(ctx, Config{Backend: BackendPostgres}, nil)
		assert.Error(t, err)

		_, err = Open(ctx, Config{Backend: BackendWebDAV}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, Config{Backend: "s3"}, nil)
		assert.ErrorIs(t, err, ErrUnknownStore)
	})
}

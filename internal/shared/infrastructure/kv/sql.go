package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/migrations"
)

// SQLStorage keeps entries in the kv_entries table of a SQLite or
// PostgreSQL database.
type SQLStorage struct {
	conn database.Connection

	getQuery    string
	upsertQuery string
	deleteQuery string
}

// NewSQLStorage runs the schema migrations and prepares the statements for
// the connection's driver.
func NewSQLStorage(ctx context.Context, conn database.Connection) (*SQLStorage, error) {
	if err := migrations.Run(ctx, conn); err != nil {
		return nil, err
	}

	d := conn.Driver()
	return &SQLStorage{
		conn:     conn,
		getQuery: fmt.Sprintf(`SELECT value FROM kv_entries WHERE key = %s`, d.Placeholder(1)),
		upsertQuery: fmt.Sprintf(
			`INSERT INTO kv_entries (key, value, updated_at) VALUES (%s, %s, %s)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			d.Placeholder(1), d.Placeholder(2), d.Placeholder(3),
		),
		deleteQuery: fmt.Sprintf(`DELETE FROM kv_entries WHERE key = %s`, d.Placeholder(1)),
	}, nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.conn.QueryRow(ctx, s.getQuery, key).Scan(&value)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := validateEntry(key, value); err != nil {
		return err
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.conn.Exec(ctx, s.upsertQuery, key, value, updatedAt); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLStorage) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.conn.Exec(ctx, s.deleteQuery, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *SQLStorage) Close() error {
	return s.conn.Close()
}

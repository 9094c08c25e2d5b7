package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"timetable/internal/adapters/storage"
)

// SQLiteStore implements Store using the kv table.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// NewSQLiteStore creates a new key-value store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Get retrieves the entry stored under key.
// PRE: key is non-empty
// POST: Returns the entry or ErrNotFound
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT key, value, revision, updated_at FROM kv WHERE key = ?", key)
	var e Entry
	var value, updatedAt string
	err := row.Scan(&e.Key, &value, &e.Revision, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %q: %w", key, err)
	}
	e.Value = []byte(value)
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		e.UpdatedAt = t
	}
	return e, nil
}

// Put overwrites the value stored under key and stamps a fresh revision.
// PRE: key is non-empty
// POST: Exactly one row exists for key holding value
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) (Entry, error) {
	e := Entry{
		Key:       key,
		Value:     value,
		Revision:  uuid.New().String(),
		UpdatedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value, revision, updated_at) VALUES (?, ?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, revision=excluded.revision, updated_at=excluded.updated_at",
		e.Key, string(e.Value), e.Revision, e.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("put %q: %w", key, err)
	}
	return e, nil
}

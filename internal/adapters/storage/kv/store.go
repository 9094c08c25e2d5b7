package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Entry is one stored value together with its write metadata.
type Entry struct {
	Key       string
	Value     []byte
	Revision  string
	UpdatedAt time.Time
}

// Store persists opaque values under string keys.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, value []byte) (Entry, error)
}

package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"timetable/internal/adapters/perf"
)

// SQLDB is the query surface shared by *sql.DB and *TimedDB. Stores and
// migrations accept it so either can be passed.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var (
	_ SQLDB = (*sql.DB)(nil)
	_ SQLDB = (*TimedDB)(nil)
)

// DefaultSlowQueryMs is the slow-statement threshold used when none is configured.
const DefaultSlowQueryMs = 50

// TimedDB times every statement run against a connection pool. Statements at
// or over the threshold are logged as slow_query; every call is recorded to
// the collector when one is set.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold time.Duration
}

// NewTimedDB takes ownership of db. A non-positive slowQueryMs selects
// DefaultSlowQueryMs.
// PRE: db is a valid database connection
// POST: Close on the result closes db
func NewTimedDB(db *sql.DB, collector *perf.Collector, slowQueryMs int) *TimedDB {
	if slowQueryMs <= 0 {
		slowQueryMs = DefaultSlowQueryMs
	}
	return &TimedDB{
		db:        db,
		collector: collector,
		threshold: time.Duration(slowQueryMs) * time.Millisecond,
	}
}

func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer t.track(ctx, "exec", query)()
	return t.db.ExecContext(ctx, query, args...)
}

func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer t.track(ctx, "query", query)()
	return t.db.QueryContext(ctx, query, args...)
}

func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer t.track(ctx, "row", query)()
	return t.db.QueryRowContext(ctx, query, args...)
}

// BeginTx times only the BEGIN; statements on the returned *sql.Tx are not tracked.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	defer t.track(ctx, "begin", "")()
	return t.db.BeginTx(ctx, opts)
}

// Close closes the wrapped connection pool.
func (t *TimedDB) Close() error {
	return t.db.Close()
}

// track starts the clock for one call and returns the func that stops it.
func (t *TimedDB) track(ctx context.Context, kind, query string) func() {
	start := time.Now()
	op := statementOp(kind, query)
	return func() {
		elapsed := time.Since(start)
		durationMs := float64(elapsed.Microseconds()) / 1000.0

		level, msg := slog.LevelDebug, "query"
		if elapsed >= t.threshold {
			level, msg = slog.LevelWarn, "slow_query"
		}
		slog.Log(ctx, level, msg, "op", op, "duration_ms", durationMs)

		if t.collector != nil {
			t.collector.Record(perf.Entry{
				Kind:       perf.KindQuery,
				Op:         op,
				DurationMs: durationMs,
				Timestamp:  start,
			})
		}
	}
}

// statementOp labels a call by its kind and leading SQL keyword, e.g. "exec INSERT".
func statementOp(kind, query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return kind
	}
	if i := strings.IndexFunc(q, unicode.IsSpace); i > 0 {
		q = q[:i]
	}
	return kind + " " + strings.ToUpper(q)
}

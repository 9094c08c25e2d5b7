package timetable

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"timetable/internal/adapters/perf"
	"timetable/internal/adapters/storage/kv"
	domain "timetable/internal/domain/timetable"
)

// DefaultKey is the storage key the whole dataset lives under.
const DefaultKey = "timetable-data"

// Adapter loads and saves the whole timetable collection as one value.
// A nil kv.Store means no storage medium is available: loads come back
// empty and saves are skipped.
type Adapter struct {
	store     kv.Store
	key       string
	observer  Observer
	collector *perf.Collector
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithObserver registers a callback for every Outcome.
func WithObserver(o Observer) Option {
	return func(a *Adapter) { a.observer = o }
}

// WithCollector records load and save timings.
func WithCollector(c *perf.Collector) Option {
	return func(a *Adapter) { a.collector = c }
}

// NewAdapter creates a persistence adapter over store, which may be nil.
func NewAdapter(store kv.Store, opts ...Option) *Adapter {
	a := &Adapter{store: store, key: DefaultKey}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Available reports whether a storage medium is attached.
func (a *Adapter) Available() bool {
	return a.store != nil
}

// Load returns the stored collection. Every failure path yields an empty
// collection and is reported through the Outcome.
// PRE: none
// POST: Returned collection is valid and holds one Timetable per key
func (a *Adapter) Load(ctx context.Context) (domain.Collection, Outcome) {
	defer a.time("timetable.Load", time.Now())

	out := Outcome{Op: OpLoad, Key: a.key}
	if a.store == nil {
		out.Status = StatusUnavailable
		return domain.Collection{}, a.report(out)
	}

	entry, err := a.store.Get(ctx, a.key)
	if errors.Is(err, kv.ErrNotFound) {
		out.Status = StatusEmpty
		return domain.Collection{}, a.report(out)
	}
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		return domain.Collection{}, a.report(out)
	}

	out.Revision = entry.Revision
	out.Bytes = len(entry.Value)
	c, err := Decode(entry.Value)
	if err != nil {
		out.Status = StatusCorrupt
		out.Err = err
		return domain.Collection{}, a.report(out)
	}

	out.Status = StatusOK
	out.Timetables = len(c)
	return c, a.report(out)
}

// Save overwrites the stored value with c. Failures leave the caller's
// in-memory state untouched and are reported through the Outcome.
// PRE: c holds validated timetables
// POST: On StatusOK the stored value decodes to c
func (a *Adapter) Save(ctx context.Context, c domain.Collection) Outcome {
	defer a.time("timetable.Save", time.Now())

	out := Outcome{Op: OpSave, Key: a.key, Timetables: len(c)}
	if a.store == nil {
		out.Status = StatusSkipped
		return a.report(out)
	}

	payload, err := Encode(c)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		return a.report(out)
	}
	out.Bytes = len(payload)

	entry, err := a.store.Put(ctx, a.key, payload)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		return a.report(out)
	}

	out.Status = StatusOK
	out.Revision = entry.Revision
	return a.report(out)
}

func (a *Adapter) report(out Outcome) Outcome {
	attrs := []any{
		"op", string(out.Op),
		"status", string(out.Status),
		"key", out.Key,
		"timetables", out.Timetables,
		"bytes", out.Bytes,
	}
	switch out.Status {
	case StatusOK, StatusEmpty:
		slog.Debug("storage_event", append(attrs, "revision", out.Revision)...)
	case StatusUnavailable, StatusSkipped:
		slog.Debug("storage_event", attrs...)
	default:
		slog.Warn("storage_event", append(attrs, "error", out.Err)...)
	}
	if a.observer != nil {
		a.observer(out)
	}
	return out
}

func (a *Adapter) time(op string, start time.Time) {
	if a.collector == nil {
		return
	}
	a.collector.Record(perf.Entry{
		Kind:       perf.KindPersist,
		Op:         op,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

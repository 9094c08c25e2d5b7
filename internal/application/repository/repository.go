// Package repository holds the authoritative in-memory timetable collection
// and writes it through to storage after every mutation.
package repository

import (
	"context"
	"log/slog"

	storage "timetable/internal/adapters/storage/timetable"
	domain "timetable/internal/domain/timetable"
)

// Persister loads and saves the whole collection. Neither call fails; the
// Outcome says what happened.
type Persister interface {
	Load(ctx context.Context) (domain.Collection, storage.Outcome)
	Save(ctx context.Context, c domain.Collection) storage.Outcome
}

// Repository is the in-memory collection of timetables. It is not safe for
// concurrent use.
type Repository struct {
	persister Persister
	tables    domain.Collection
	last      storage.Outcome
}

// New loads the collection once from persister.
// PRE: persister is non-nil
// POST: Repository holds the stored collection, or an empty one on any load failure
func New(ctx context.Context, persister Persister) *Repository {
	tables, out := persister.Load(ctx)
	if tables == nil {
		tables = domain.Collection{}
	}
	return &Repository{persister: persister, tables: tables, last: out}
}

// LastOutcome returns the most recent load or save outcome.
func (r *Repository) LastOutcome() storage.Outcome {
	return r.last
}

// Timetables returns a deep copy of the collection.
func (r *Repository) Timetables() domain.Collection {
	return r.tables.Clone()
}

// Find returns a copy of the Timetable for key.
// INVARIANT: Repository state is not mutated
func (r *Repository) Find(key domain.Key) (domain.Timetable, bool) {
	t, ok := r.tables.Find(key)
	if !ok {
		return domain.Timetable{}, false
	}
	return t.Clone(), true
}

// GetOrCreate returns the Timetable for key, appending and persisting an
// empty one when none exists.
// PRE: key is valid
// POST: Collection holds exactly one Timetable for key
func (r *Repository) GetOrCreate(ctx context.Context, key domain.Key) domain.Timetable {
	if t, ok := r.Find(key); ok {
		return t
	}
	t := domain.New(key)
	r.tables = append(r.tables, t)
	r.persist(ctx)
	slog.Info("timetable_event", "event", "timetable_created", "year", key.Year, "semester", string(key.Semester))
	return t.Clone()
}

// UpsertSlot stores slot in the Timetable for key, replacing any slot in the
// same cell. The Timetable is created first when missing.
// PRE: none
// POST: On nil error, FindSlot(key, slot.Day, slot.Period) returns slot
func (r *Repository) UpsertSlot(ctx context.Context, key domain.Key, slot domain.TimeSlot) (domain.Timetable, error) {
	if err := key.Validate(); err != nil {
		return domain.Timetable{}, err
	}
	if err := slot.Validate(); err != nil {
		return domain.Timetable{}, err
	}

	updated := r.GetOrCreate(ctx, key).WithSlot(slot)
	r.writeBack(updated)
	r.persist(ctx)

	slog.Info("timetable_event", "event", "slot_saved", "year", key.Year, "semester", string(key.Semester), "cell", slot.Cell().String())
	return updated.Clone(), nil
}

// DeleteSlot removes the slot at (day, period) from the Timetable for key.
// Returns false without persisting when no Timetable exists for key.
// POST: FindSlot(key, day, period) reports not found
func (r *Repository) DeleteSlot(ctx context.Context, key domain.Key, day domain.Day, period int) bool {
	t, ok := r.tables.Find(key)
	if !ok {
		return false
	}

	updated, removed := t.WithoutSlot(day, period)
	r.writeBack(updated)
	r.persist(ctx)

	if removed {
		slog.Info("timetable_event", "event", "slot_deleted", "year", key.Year, "semester", string(key.Semester), "cell", domain.Cell{Day: day, Period: period}.String())
	}
	return removed
}

// FindSlot returns the slot at (day, period) in the Timetable for key.
// INVARIANT: Repository state is not mutated
func (r *Repository) FindSlot(key domain.Key, day domain.Day, period int) (domain.TimeSlot, bool) {
	t, ok := r.tables.Find(key)
	if !ok {
		return domain.TimeSlot{}, false
	}
	return t.FindSlot(day, period)
}

// ListYears returns every distinct year, ascending, across both semesters.
func (r *Repository) ListYears() []int {
	return r.tables.Years()
}

// AddYear appends empty First and Second semester timetables for year.
// Returns false without changes when the year already exists or is not positive.
// PRE: year > 0
// POST: ListYears contains year
func (r *Repository) AddYear(ctx context.Context, year int) bool {
	if year < 1 || r.tables.HasYear(year) {
		return false
	}
	for _, sem := range domain.Semesters {
		r.tables = append(r.tables, domain.New(domain.Key{Year: year, Semester: sem}))
	}
	r.persist(ctx)

	slog.Info("timetable_event", "event", "year_added", "year", year)
	return true
}

// writeBack replaces the stored Timetable sharing t's key, appending t when
// no entry matches.
func (r *Repository) writeBack(t domain.Timetable) {
	if i := r.tables.Index(t.Key()); i >= 0 {
		r.tables[i] = t
		return
	}
	r.tables = append(r.tables, t)
}

func (r *Repository) persist(ctx context.Context) {
	r.last = r.persister.Save(ctx, r.tables.Clone())
}

// Package session ties one Repository to the timetable currently selected by
// the user. Every presentation surface works through a Session.
package session

import (
	"context"
	"log/slog"

	"timetable/internal/application/repository"
	domain "timetable/internal/domain/timetable"
)

// Selection is the (year, semester) the user is viewing and editing.
type Selection struct {
	Year     int
	Semester domain.Semester
}

// DefaultSelection is used when nothing is stored yet.
var DefaultSelection = Selection{Year: 1, Semester: domain.First}

// Key returns the timetable address of the selection.
func (s Selection) Key() domain.Key {
	return domain.Key{Year: s.Year, Semester: s.Semester}
}

func (s Selection) String() string {
	return s.Key().String()
}

// Session owns the repository and the current selection. It is not safe for
// concurrent use.
type Session struct {
	repo      *repository.Repository
	selection Selection
}

// New starts a session over repo. The selection starts at the first stored
// timetable, or DefaultSelection when the collection is empty.
// PRE: repo is non-nil
// POST: Selection is set; no timetable is created
func New(repo *repository.Repository) *Session {
	sel := DefaultSelection
	if tables := repo.Timetables(); len(tables) > 0 {
		sel = Selection{Year: tables[0].Year, Semester: tables[0].Semester}
	}
	return &Session{repo: repo, selection: sel}
}

// Repository exposes the underlying repository for read models and export.
func (s *Session) Repository() *repository.Repository {
	return s.repo
}

// Selection returns the current selection.
func (s *Session) Selection() Selection {
	return s.selection
}

// Select replaces the whole selection. The year is not checked against
// ListYears; an unseen year simply shows an empty timetable.
func (s *Session) Select(sel Selection) {
	s.selection = sel
	slog.Debug("session_event", "event", "selection_changed", "year", sel.Year, "semester", string(sel.Semester))
}

// SelectYear changes the year and keeps the semester.
func (s *Session) SelectYear(year int) {
	s.Select(Selection{Year: year, Semester: s.selection.Semester})
}

// SelectSemester changes the semester and keeps the year.
func (s *Session) SelectSemester(sem domain.Semester) {
	s.Select(Selection{Year: s.selection.Year, Semester: sem})
}

// Current returns the selected timetable, creating and persisting an empty
// one when it does not exist yet.
// PRE: Selection is a valid key
// POST: Repository holds a timetable for the selection
func (s *Session) Current(ctx context.Context) domain.Timetable {
	return s.repo.GetOrCreate(ctx, s.selection.Key())
}

// Peek returns the selected timetable without creating it.
func (s *Session) Peek() (domain.Timetable, bool) {
	return s.repo.Find(s.selection.Key())
}

// SaveSlot upserts slot into the selected timetable.
func (s *Session) SaveSlot(ctx context.Context, slot domain.TimeSlot) (domain.Timetable, error) {
	return s.repo.UpsertSlot(ctx, s.selection.Key(), slot)
}

// DeleteSlot removes the slot at (day, period) from the selected timetable.
func (s *Session) DeleteSlot(ctx context.Context, day domain.Day, period int) bool {
	return s.repo.DeleteSlot(ctx, s.selection.Key(), day, period)
}

// Slot returns the slot at (day, period) in the selected timetable.
func (s *Session) Slot(day domain.Day, period int) (domain.TimeSlot, bool) {
	return s.repo.FindSlot(s.selection.Key(), day, period)
}

// Years returns every stored year, ascending.
func (s *Session) Years() []int {
	return s.repo.ListYears()
}

// AddYear creates both semesters for year and, when created, switches the
// selection to (year, First).
// POST: On true, Selection() == {year, First}
func (s *Session) AddYear(ctx context.Context, year int) bool {
	if !s.repo.AddYear(ctx, year) {
		return false
	}
	s.Select(Selection{Year: year, Semester: domain.First})
	return true
}

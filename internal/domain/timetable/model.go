package timetable

import (
	"errors"
	"fmt"
	"strings"
)

// Day is a weekday column of the timetable grid.
type Day string

// Day of week constants. The values are the persisted encoding.
const (
	Mon Day = "Mon"
	Tue Day = "Tue"
	Wed Day = "Wed"
	Thu Day = "Thu"
	Fri Day = "Fri"
)

// Days lists the grid columns in display order.
var Days = []Day{Mon, Tue, Wed, Thu, Fri}

// Semester is one half of an academic year.
type Semester string

// Semester constants. The values are the persisted encoding.
const (
	First  Semester = "前期"
	Second Semester = "後期"
)

// Semesters lists both semesters in display order.
var Semesters = []Semester{First, Second}

// MaxPeriod is the number of periods shown per day.
const MaxPeriod = 7

// Domain errors
var (
	ErrInvalidDay      = errors.New("day must be one of Mon, Tue, Wed, Thu, Fri")
	ErrInvalidPeriod   = errors.New("period must be a positive integer")
	ErrEmptySubject    = errors.New("subject cannot be empty")
	ErrInvalidColor    = errors.New("color is not in the palette")
	ErrInvalidYear     = errors.New("year must be a positive integer")
	ErrInvalidSemester = errors.New("semester must be 前期 or 後期")
)

// TimeSlot is one scheduled class occupying a single grid cell.
// Empty optional fields mean "unset".
type TimeSlot struct {
	Day     Day
	Period  int
	Subject string
	Teacher string
	Room    string
	Memo    string
	Color   Color
}

// Cell returns the grid address of the slot.
func (s TimeSlot) Cell() Cell {
	return Cell{Day: s.Day, Period: s.Period}
}

// Normalize trims every text field. Blank optional fields become unset.
// PRE: none
// POST: Returns a copy with surrounding whitespace removed
func (s TimeSlot) Normalize() TimeSlot {
	s.Subject = strings.TrimSpace(s.Subject)
	s.Teacher = strings.TrimSpace(s.Teacher)
	s.Room = strings.TrimSpace(s.Room)
	s.Memo = strings.TrimSpace(s.Memo)
	s.Color = Color(strings.TrimSpace(string(s.Color)))
	if s.Color == DefaultColor {
		s.Color = NoColor
	}
	return s
}

// Validate checks if the TimeSlot has valid data.
// PRE: TimeSlot struct is populated
// POST: Returns nil if valid, error otherwise
func (s *TimeSlot) Validate() error {
	if !s.Day.IsValid() {
		return ErrInvalidDay
	}
	if s.Period < 1 {
		return ErrInvalidPeriod
	}
	if strings.TrimSpace(s.Subject) == "" {
		return ErrEmptySubject
	}
	if !s.Color.IsValid() {
		return ErrInvalidColor
	}
	return nil
}

// Key identifies a Timetable by academic year and semester.
type Key struct {
	Year     int
	Semester Semester
}

// Validate checks that the key can address a Timetable.
func (k Key) Validate() error {
	if k.Year < 1 {
		return ErrInvalidYear
	}
	if !k.Semester.IsValid() {
		return ErrInvalidSemester
	}
	return nil
}

// String renders the key as "1年 前期".
func (k Key) String() string {
	return fmt.Sprintf("%d年 %s", k.Year, k.Semester)
}

// Timetable is the schedule for one academic year and one semester.
type Timetable struct {
	Year     int
	Semester Semester
	Slots    []TimeSlot
}

// New returns an empty Timetable for key.
func New(key Key) Timetable {
	return Timetable{Year: key.Year, Semester: key.Semester, Slots: []TimeSlot{}}
}

// Key returns the (year, semester) pair of the Timetable.
func (t Timetable) Key() Key {
	return Key{Year: t.Year, Semester: t.Semester}
}

// Validate checks the Timetable header and every slot, including the
// one-slot-per-cell rule.
// PRE: Timetable struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Timetable) Validate() error {
	if err := t.Key().Validate(); err != nil {
		return err
	}
	seen := make(map[Cell]bool, len(t.Slots))
	for i := range t.Slots {
		if err := t.Slots[i].Validate(); err != nil {
			return fmt.Errorf("slot %s: %w", t.Slots[i].Cell(), err)
		}
		c := t.Slots[i].Cell()
		if seen[c] {
			return fmt.Errorf("slot %s: duplicate cell", c)
		}
		seen[c] = true
	}
	return nil
}

// FindSlot returns the slot at (day, period).
// INVARIANT: Timetable is not mutated
func (t Timetable) FindSlot(day Day, period int) (TimeSlot, bool) {
	for _, s := range t.Slots {
		if s.Day == day && s.Period == period {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// WithSlot returns a copy of the Timetable in which slot replaces the entry
// sharing its cell, or is appended when the cell is empty.
// INVARIANT: receiver's slot slice is not mutated
func (t Timetable) WithSlot(slot TimeSlot) Timetable {
	slots := make([]TimeSlot, 0, len(t.Slots)+1)
	replaced := false
	for _, s := range t.Slots {
		if s.Day == slot.Day && s.Period == slot.Period {
			slots = append(slots, slot)
			replaced = true
			continue
		}
		slots = append(slots, s)
	}
	if !replaced {
		slots = append(slots, slot)
	}
	t.Slots = slots
	return t
}

// WithoutSlot returns a copy of the Timetable with any slot at (day, period)
// removed, and whether one was removed.
// INVARIANT: receiver's slot slice is not mutated
func (t Timetable) WithoutSlot(day Day, period int) (Timetable, bool) {
	slots := make([]TimeSlot, 0, len(t.Slots))
	removed := false
	for _, s := range t.Slots {
		if s.Day == day && s.Period == period {
			removed = true
			continue
		}
		slots = append(slots, s)
	}
	t.Slots = slots
	return t, removed
}

// Clone returns a deep copy of the Timetable.
func (t Timetable) Clone() Timetable {
	slots := make([]TimeSlot, len(t.Slots))
	copy(slots, t.Slots)
	t.Slots = slots
	return t
}

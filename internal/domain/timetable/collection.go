package timetable

import "sort"

// Collection is the full dataset: every Timetable the user has recorded.
// Order carries no meaning; at most one Timetable exists per Key.
type Collection []Timetable

// Index returns the position of the Timetable for key, or -1.
func (c Collection) Index(key Key) int {
	for i, t := range c {
		if t.Year == key.Year && t.Semester == key.Semester {
			return i
		}
	}
	return -1
}

// Find returns the Timetable for key.
// INVARIANT: Collection is not mutated
func (c Collection) Find(key Key) (Timetable, bool) {
	if i := c.Index(key); i >= 0 {
		return c[i], true
	}
	return Timetable{}, false
}

// Years returns the distinct years present, ascending.
func (c Collection) Years() []int {
	seen := make(map[int]bool, len(c))
	years := make([]int, 0, len(c))
	for _, t := range c {
		if seen[t.Year] {
			continue
		}
		seen[t.Year] = true
		years = append(years, t.Year)
	}
	sort.Ints(years)
	return years
}

// HasYear reports whether any Timetable exists for year.
func (c Collection) HasYear(year int) bool {
	for _, t := range c {
		if t.Year == year {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the Collection.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, t := range c {
		out[i] = t.Clone()
	}
	return out
}

// Merge folds Timetables sharing a Key into the first occurrence. Slots of
// later duplicates overwrite earlier ones cell by cell, and within a single
// Timetable the last slot for a cell wins.
// POST: Result holds at most one Timetable per Key, in first-seen order
func Merge(in []Timetable) Collection {
	out := make(Collection, 0, len(in))
	for _, t := range in {
		i := out.Index(t.Key())
		if i < 0 {
			out = append(out, New(t.Key()))
			i = len(out) - 1
		}
		for _, s := range t.Slots {
			out[i] = out[i].WithSlot(s)
		}
	}
	return out
}

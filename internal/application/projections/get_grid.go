package projections

import (
	domain "timetable/internal/domain/timetable"
)

// TimetableFinder defines the repository interface needed by the grid projections.
type TimetableFinder interface {
	Find(key domain.Key) (domain.Timetable, bool)
}

// GetGridQuery carries input for the grid projection.
type GetGridQuery struct {
	Key domain.Key
}

// GridCell is one cell of the weekly grid.
type GridCell struct {
	Cell   domain.Cell
	Label  string // e.g. "月曜1限"
	Slot   domain.TimeSlot
	Filled bool
}

// GridRow holds one period across Mon..Fri.
type GridRow struct {
	Period int
	Cells  []GridCell
}

// GetGridResult is the weekly grid of one timetable.
type GetGridResult struct {
	Key       domain.Key
	Title     string
	DayLabels []string
	Rows      []GridRow
	SlotCount int
	// Overflow holds stored slots whose period lies past the grid.
	Overflow []domain.TimeSlot
}

// GetGridDeps holds dependencies for the grid projection.
type GetGridDeps struct {
	Timetables TimetableFinder
}

// QueryGetGrid lays the timetable for query.Key out as MaxPeriod rows by five
// weekday columns. A missing timetable yields an empty grid; nothing is created.
// PRE: none
// POST: Rows has MaxPeriod entries, each with len(domain.Days) cells
func QueryGetGrid(query GetGridQuery, deps GetGridDeps) GetGridResult {
	t, ok := deps.Timetables.Find(query.Key)
	if !ok {
		t = domain.New(query.Key)
	}

	res := GetGridResult{
		Key:       query.Key,
		Title:     query.Key.String(),
		DayLabels: make([]string, len(domain.Days)),
		Rows:      make([]GridRow, 0, domain.MaxPeriod),
		SlotCount: len(t.Slots),
	}
	for i, d := range domain.Days {
		res.DayLabels[i] = d.Label()
	}

	for _, p := range domain.Periods() {
		row := GridRow{Period: p, Cells: make([]GridCell, 0, len(domain.Days))}
		for _, d := range domain.Days {
			cell := domain.Cell{Day: d, Period: p}
			slot, filled := t.FindSlot(d, p)
			row.Cells = append(row.Cells, GridCell{Cell: cell, Label: cell.Label(), Slot: slot, Filled: filled})
		}
		res.Rows = append(res.Rows, row)
	}

	for _, s := range t.Slots {
		if s.Period > domain.MaxPeriod {
			res.Overflow = append(res.Overflow, s)
		}
	}
	return res
}

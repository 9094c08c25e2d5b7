package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

var dayLabels = map[Day]string{
	Mon: "月",
	Tue: "火",
	Wed: "水",
	Thu: "木",
	Fri: "金",
}

// IsValid reports whether d is one of the grid days.
func (d Day) IsValid() bool {
	_, ok := dayLabels[d]
	return ok
}

// Label returns the single-character Japanese label of the day.
func (d Day) Label() string {
	return dayLabels[d]
}

// ParseDay accepts the persisted abbreviation in any case, the full English
// name, or the Japanese label.
func ParseDay(s string) (Day, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Days {
		abbr := strings.ToLower(string(d))
		if v == abbr || v == d.Label() || v == d.Label()+"曜" || strings.HasPrefix(v, abbr) && isFullDayName(v) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

func isFullDayName(v string) bool {
	switch v {
	case "monday", "tuesday", "wednesday", "thursday", "friday":
		return true
	}
	return false
}

// IsValid reports whether s is one of the two semesters.
func (s Semester) IsValid() bool {
	return s == First || s == Second
}

// ParseSemester accepts 前期/後期, first/second or 1/2.
func ParseSemester(s string) (Semester, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(First), "first", "1":
		return First, nil
	case string(Second), "second", "2":
		return Second, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSemester, s)
}

// Cell addresses one slot of the grid.
type Cell struct {
	Day    Day
	Period int
}

// String renders the cell as "Mon-1".
func (c Cell) String() string {
	return string(c.Day) + "-" + strconv.Itoa(c.Period)
}

// Label renders the cell the way the edit dialog titles it, e.g. "月曜1限".
func (c Cell) Label() string {
	return fmt.Sprintf("%s曜%d限", c.Day.Label(), c.Period)
}

// Periods returns the period numbers shown per day, 1..MaxPeriod.
func Periods() []int {
	out := make([]int, MaxPeriod)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Cells enumerates the grid row by row: period 1 Mon..Fri, period 2 Mon..Fri, ...
func Cells() []Cell {
	out := make([]Cell, 0, MaxPeriod*len(Days))
	for _, p := range Periods() {
		for _, d := range Days {
			out = append(out, Cell{Day: d, Period: p})
		}
	}
	return out
}

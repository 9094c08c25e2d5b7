package projections

import (
	"reflect"
	"testing"

	domain "timetable/internal/domain/timetable"
)

type stubTimetables struct {
	tables domain.Collection
}

func (s stubTimetables) Find(key domain.Key) (domain.Timetable, bool) {
	return s.tables.Find(key)
}

func (s stubTimetables) ListYears() []int {
	return s.tables.Years()
}

var gridKey = domain.Key{Year: 2, Semester: domain.Second}

// TestQueryGetGrid_Layout tests the 7x5 shape and slot placement.
func TestQueryGetGrid_Layout(t *testing.T) {
	stub := stubTimetables{tables: domain.Collection{
		domain.New(gridKey).
			WithSlot(domain.TimeSlot{Day: domain.Tue, Period: 3, Subject: "化学", Room: "C-1"}).
			WithSlot(domain.TimeSlot{Day: domain.Fri, Period: 9, Subject: "Seminar"}),
	}}

	res := QueryGetGrid(GetGridQuery{Key: gridKey}, GetGridDeps{Timetables: stub})

	if res.Title != "2年 後期" {
		t.Errorf("Title = %q", res.Title)
	}
	if !reflect.DeepEqual(res.DayLabels, []string{"月", "火", "水", "木", "金"}) {
		t.Errorf("DayLabels = %v", res.DayLabels)
	}
	if len(res.Rows) != domain.MaxPeriod {
		t.Fatalf("expected %d rows, got %d", domain.MaxPeriod, len(res.Rows))
	}
	for _, row := range res.Rows {
		if len(row.Cells) != len(domain.Days) {
			t.Fatalf("period %d: expected %d cells, got %d", row.Period, len(domain.Days), len(row.Cells))
		}
	}

	cell := res.Rows[2].Cells[1]
	if !cell.Filled || cell.Slot.Subject != "化学" {
		t.Errorf("Tue-3 = %+v, want 化学", cell)
	}
	if cell.Label != "火曜3限" {
		t.Errorf("Label = %q, want 火曜3限", cell.Label)
	}
	if res.Rows[0].Cells[0].Filled {
		t.Error("Mon-1 should be empty")
	}
	if res.SlotCount != 2 {
		t.Errorf("SlotCount = %d, want 2", res.SlotCount)
	}
	if len(res.Overflow) != 1 || res.Overflow[0].Period != 9 {
		t.Errorf("Overflow = %+v, want the period 9 slot", res.Overflow)
	}
}

// TestQueryGetGrid_MissingTimetable tests that an unknown key renders empty.
func TestQueryGetGrid_MissingTimetable(t *testing.T) {
	res := QueryGetGrid(GetGridQuery{Key: gridKey}, GetGridDeps{Timetables: stubTimetables{}})
	if res.SlotCount != 0 || len(res.Rows) != domain.MaxPeriod {
		t.Errorf("unexpected grid: %d slots, %d rows", res.SlotCount, len(res.Rows))
	}
	for _, row := range res.Rows {
		for _, c := range row.Cells {
			if c.Filled {
				t.Fatalf("%s should be empty", c.Cell)
			}
		}
	}
}

// TestQueryGetYearOptions tests merging stored years with the defaults.
func TestQueryGetYearOptions(t *testing.T) {
	tests := []struct {
		name  string
		years []int
		want  []int
	}{
		{"nothing stored", nil, []int{1, 2, 3, 4}},
		{"inside defaults", []int{2, 3}, []int{1, 2, 3, 4}},
		{"beyond defaults", []int{1, 6}, []int{1, 2, 3, 4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c domain.Collection
			for _, y := range tt.years {
				c = append(c, domain.New(domain.Key{Year: y, Semester: domain.First}))
			}
			got := QueryGetYearOptions(GetYearOptionsDeps{Years: stubTimetables{tables: c}})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("QueryGetYearOptions() = %v, want %v", got, tt.want)
			}
		})
	}
	if !reflect.DeepEqual(DefaultYearOptions, []int{1, 2, 3, 4}) {
		t.Error("DefaultYearOptions was mutated")
	}
}

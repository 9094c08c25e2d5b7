package timetable_test

import (
	"errors"
	"testing"

	"timetable/internal/domain/timetable"
)

// TestTimeSlot_Validate tests validation of TimeSlot.
func TestTimeSlot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slot    timetable.TimeSlot
		wantErr error
	}{
		{
			name:    "valid slot",
			slot:    timetable.TimeSlot{Day: timetable.Mon, Period: 1, Subject: "Math"},
			wantErr: nil,
		},
		{
			name:    "valid with every field",
			slot:    timetable.TimeSlot{Day: timetable.Fri, Period: 7, Subject: "物理", Teacher: "Sato", Room: "A-101", Memo: "lab", Color: timetable.Blue},
			wantErr: nil,
		},
		{
			name:    "period beyond grid is still a positive period",
			slot:    timetable.TimeSlot{Day: timetable.Wed, Period: 9, Subject: "Seminar"},
			wantErr: nil,
		},
		{
			name:    "invalid day",
			slot:    timetable.TimeSlot{Day: "Sat", Period: 1, Subject: "Math"},
			wantErr: timetable.ErrInvalidDay,
		},
		{
			name:    "empty day",
			slot:    timetable.TimeSlot{Period: 1, Subject: "Math"},
			wantErr: timetable.ErrInvalidDay,
		},
		{
			name:    "zero period",
			slot:    timetable.TimeSlot{Day: timetable.Mon, Period: 0, Subject: "Math"},
			wantErr: timetable.ErrInvalidPeriod,
		},
		{
			name:    "negative period",
			slot:    timetable.TimeSlot{Day: timetable.Mon, Period: -2, Subject: "Math"},
			wantErr: timetable.ErrInvalidPeriod,
		},
		{
			name:    "blank subject",
			slot:    timetable.TimeSlot{Day: timetable.Mon, Period: 1, Subject: "   "},
			wantErr: timetable.ErrEmptySubject,
		},
		{
			name:    "unknown color",
			slot:    timetable.TimeSlot{Day: timetable.Mon, Period: 1, Subject: "Math", Color: "bg-black"},
			wantErr: timetable.ErrInvalidColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("TimeSlot.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestTimeSlot_Normalize tests trimming and blank-to-unset conversion.
func TestTimeSlot_Normalize(t *testing.T) {
	got := timetable.TimeSlot{
		Day:     timetable.Tue,
		Period:  2,
		Subject: "  English ",
		Teacher: "   ",
		Room:    " B2 ",
		Memo:    "",
		Color:   timetable.DefaultColor,
	}.Normalize()

	want := timetable.TimeSlot{Day: timetable.Tue, Period: 2, Subject: "English", Room: "B2"}
	if got != want {
		t.Errorf("Normalize() = %+v, want %+v", got, want)
	}
}

// TestKey_Validate tests the (year, semester) address rules.
func TestKey_Validate(t *testing.T) {
	tests := []struct {
		name    string
		key     timetable.Key
		wantErr error
	}{
		{"first semester", timetable.Key{Year: 1, Semester: timetable.First}, nil},
		{"second semester", timetable.Key{Year: 4, Semester: timetable.Second}, nil},
		{"zero year", timetable.Key{Year: 0, Semester: timetable.First}, timetable.ErrInvalidYear},
		{"negative year", timetable.Key{Year: -1, Semester: timetable.First}, timetable.ErrInvalidYear},
		{"unknown semester", timetable.Key{Year: 1, Semester: "通年"}, timetable.ErrInvalidSemester},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.key.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Key.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestTimetable_Validate rejects two slots in one cell.
func TestTimetable_Validate(t *testing.T) {
	tt := timetable.Timetable{
		Year:     1,
		Semester: timetable.First,
		Slots: []timetable.TimeSlot{
			{Day: timetable.Mon, Period: 1, Subject: "Math"},
			{Day: timetable.Mon, Period: 1, Subject: "Art"},
		},
	}
	if err := tt.Validate(); err == nil {
		t.Fatal("expected duplicate cell error")
	}

	tt.Slots[1].Period = 2
	if err := tt.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestTimetable_WithSlot tests replace-or-append semantics.
func TestTimetable_WithSlot(t *testing.T) {
	base := timetable.New(timetable.Key{Year: 1, Semester: timetable.First})

	one := base.WithSlot(timetable.TimeSlot{Day: timetable.Mon, Period: 1, Subject: "Math"})
	if len(one.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(one.Slots))
	}
	if len(base.Slots) != 0 {
		t.Errorf("receiver mutated: %d slots", len(base.Slots))
	}

	replaced := one.WithSlot(timetable.TimeSlot{Day: timetable.Mon, Period: 1, Subject: "Physics"})
	if len(replaced.Slots) != 1 {
		t.Fatalf("expected replacement to keep 1 slot, got %d", len(replaced.Slots))
	}
	if replaced.Slots[0].Subject != "Physics" {
		t.Errorf("Subject = %q, want Physics", replaced.Slots[0].Subject)
	}
	if one.Slots[0].Subject != "Math" {
		t.Errorf("receiver mutated: Subject = %q", one.Slots[0].Subject)
	}

	two := replaced.WithSlot(timetable.TimeSlot{Day: timetable.Tue, Period: 1, Subject: "Art"})
	if len(two.Slots) != 2 {
		t.Errorf("expected 2 slots, got %d", len(two.Slots))
	}
}

// TestTimetable_WithoutSlot tests removal and the missing-cell no-op.
func TestTimetable_WithoutSlot(t *testing.T) {
	tt := timetable.New(timetable.Key{Year: 2, Semester: timetable.Second}).
		WithSlot(timetable.TimeSlot{Day: timetable.Thu, Period: 3, Subject: "History"})

	same, removed := tt.WithoutSlot(timetable.Fri, 3)
	if removed {
		t.Error("expected no removal for empty cell")
	}
	if len(same.Slots) != 1 {
		t.Errorf("expected 1 slot, got %d", len(same.Slots))
	}

	empty, removed := tt.WithoutSlot(timetable.Thu, 3)
	if !removed {
		t.Error("expected removal")
	}
	if len(empty.Slots) != 0 {
		t.Errorf("expected 0 slots, got %d", len(empty.Slots))
	}
	if _, ok := empty.FindSlot(timetable.Thu, 3); ok {
		t.Error("slot still found after removal")
	}
}

package timetable

import (
	"encoding/json"
	"fmt"

	domain "timetable/internal/domain/timetable"
)

// slotRecord is the persisted shape of a TimeSlot. Unset optionals are omitted.
type slotRecord struct {
	Day     string `json:"day"`
	Period  int    `json:"period"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher,omitempty"`
	Room    string `json:"room,omitempty"`
	Color   string `json:"color,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

// timetableRecord is the persisted shape of a Timetable.
type timetableRecord struct {
	Year     int          `json:"year"`
	Semester string       `json:"semester"`
	Slots    []slotRecord `json:"slots"`
}

// Encode serialises the collection as a JSON array of timetables.
// PRE: every timetable has been validated
// POST: Returns the payload written under the storage key
func Encode(c domain.Collection) ([]byte, error) {
	records := make([]timetableRecord, 0, len(c))
	for _, t := range c {
		rec := timetableRecord{
			Year:     t.Year,
			Semester: string(t.Semester),
			Slots:    make([]slotRecord, 0, len(t.Slots)),
		}
		for _, s := range t.Slots {
			rec.Slots = append(rec.Slots, slotRecord{
				Day:     string(s.Day),
				Period:  s.Period,
				Subject: s.Subject,
				Teacher: s.Teacher,
				Room:    s.Room,
				Color:   string(s.Color),
				Memo:    s.Memo,
			})
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

// Decode parses a stored payload. Any record that does not match the
// expected shape fails the whole payload; duplicate (year, semester) records
// are merged.
// PRE: none
// POST: Returns a valid collection or an error
func Decode(data []byte) (domain.Collection, error) {
	var records []timetableRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	tables := make([]domain.Timetable, 0, len(records))
	for i, rec := range records {
		t := domain.Timetable{
			Year:     rec.Year,
			Semester: domain.Semester(rec.Semester),
			Slots:    make([]domain.TimeSlot, 0, len(rec.Slots)),
		}
		if err := t.Key().Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		for _, s := range rec.Slots {
			slot := domain.TimeSlot{
				Day:     domain.Day(s.Day),
				Period:  s.Period,
				Subject: s.Subject,
				Teacher: s.Teacher,
				Room:    s.Room,
				Color:   domain.Color(s.Color),
				Memo:    s.Memo,
			}
			if slot.Color == domain.DefaultColor {
				slot.Color = domain.NoColor
			}
			if err := slot.Validate(); err != nil {
				return nil, fmt.Errorf("record %d slot %s: %w", i, slot.Cell(), err)
			}
			t.Slots = append(t.Slots, slot)
		}
		tables = append(tables, t)
	}
	return domain.Merge(tables), nil
}

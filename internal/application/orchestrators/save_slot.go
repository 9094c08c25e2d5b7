package orchestrators

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	domain "timetable/internal/domain/timetable"
)

// SlotSaver defines the session interface needed by SaveSlot.
type SlotSaver interface {
	SaveSlot(ctx context.Context, slot domain.TimeSlot) (domain.Timetable, error)
}

// SaveSlotInput carries the raw edit form for one cell.
type SaveSlotInput struct {
	Day     string
	Period  string
	Subject string
	Teacher string
	Room    string
	Memo    string
	Color   string
}

// SaveSlotDeps holds dependencies for SaveSlot.
type SaveSlotDeps struct {
	Session SlotSaver
}

type slotForm struct {
	Day     domain.Day `validate:"required"`
	Period  int        `validate:"gte=1,lte=7"`
	Subject string     `validate:"required"`
}

// ExecuteSaveSlot validates the edit form and upserts the slot into the
// selected timetable.
// PRE: none
// POST: On nil error, the selected timetable holds the normalized slot
func ExecuteSaveSlot(ctx context.Context, input SaveSlotInput, deps SaveSlotDeps) (domain.TimeSlot, error) {
	form := slotForm{Subject: strings.TrimSpace(input.Subject)}
	if day, err := domain.ParseDay(input.Day); err == nil {
		form.Day = day
	}
	if period, err := strconv.Atoi(strings.TrimSpace(input.Period)); err == nil {
		form.Period = period
	}

	var extra []FieldError
	color, err := domain.ParseColor(input.Color)
	if err != nil {
		extra = append(extra, fieldError("color"))
	}
	if err := validateForm(form, extra...); err != nil {
		return domain.TimeSlot{}, err
	}

	slot := domain.TimeSlot{
		Day:     form.Day,
		Period:  form.Period,
		Subject: form.Subject,
		Teacher: input.Teacher,
		Room:    input.Room,
		Memo:    input.Memo,
		Color:   color,
	}.Normalize()

	if _, err := deps.Session.SaveSlot(ctx, slot); err != nil {
		return domain.TimeSlot{}, err
	}

	slog.Info("form_event", "event", "slot_submitted", "cell", slot.Cell().String())
	return slot, nil
}

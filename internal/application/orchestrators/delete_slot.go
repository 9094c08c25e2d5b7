package orchestrators

import (
	"context"
	"strconv"
	"strings"

	domain "timetable/internal/domain/timetable"
)

// SlotDeleter defines the session interface needed by DeleteSlot.
type SlotDeleter interface {
	DeleteSlot(ctx context.Context, day domain.Day, period int) bool
}

// DeleteSlotInput carries the raw cell address.
type DeleteSlotInput struct {
	Day    string
	Period string
}

// DeleteSlotDeps holds dependencies for DeleteSlot.
type DeleteSlotDeps struct {
	Session SlotDeleter
}

type cellForm struct {
	Day    domain.Day `validate:"required"`
	Period int        `validate:"gte=1,lte=7"`
}

// ExecuteDeleteSlot clears one cell of the selected timetable.
// PRE: none
// POST: On nil error, the cell is empty; the bool reports whether a slot was removed
func ExecuteDeleteSlot(ctx context.Context, input DeleteSlotInput, deps DeleteSlotDeps) (bool, error) {
	var form cellForm
	if day, err := domain.ParseDay(input.Day); err == nil {
		form.Day = day
	}
	if period, err := strconv.Atoi(strings.TrimSpace(input.Period)); err == nil {
		form.Period = period
	}
	if err := validateForm(form); err != nil {
		return false, err
	}

	return deps.Session.DeleteSlot(ctx, form.Day, form.Period), nil
}

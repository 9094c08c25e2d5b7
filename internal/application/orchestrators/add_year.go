package orchestrators

import (
	"context"
	"strconv"
	"strings"
)

// YearAdder defines the session interface needed by AddYear.
type YearAdder interface {
	AddYear(ctx context.Context, year int) bool
}

// AddYearInput carries the raw year typed by the user.
type AddYearInput struct {
	Year string
}

// AddYearDeps holds dependencies for AddYear.
type AddYearDeps struct {
	Session YearAdder
}

type yearForm struct {
	Year int `validate:"gt=0"`
}

// AddYearResult reports the parsed year and whether it was new.
type AddYearResult struct {
	Year    int
	Created bool
}

// ExecuteAddYear parses the year and creates both of its semesters.
// PRE: none
// POST: On nil error, the year is stored; Created is false when it already was
func ExecuteAddYear(ctx context.Context, input AddYearInput, deps AddYearDeps) (AddYearResult, error) {
	var form yearForm
	if year, err := strconv.Atoi(strings.TrimSpace(input.Year)); err == nil {
		form.Year = year
	}
	if err := validateForm(form); err != nil {
		return AddYearResult{}, err
	}

	return AddYearResult{Year: form.Year, Created: deps.Session.AddYear(ctx, form.Year)}, nil
}

package orchestrators

import (
	"strconv"
	"strings"

	"timetable/internal/application/session"
	domain "timetable/internal/domain/timetable"
)

// Selector defines the session interface needed by SelectTimetable.
type Selector interface {
	Selection() session.Selection
	Select(sel session.Selection)
}

// SelectTimetableInput carries the raw year and semester. A blank field keeps
// the current value.
type SelectTimetableInput struct {
	Year     string
	Semester string
}

// SelectTimetableDeps holds dependencies for SelectTimetable.
type SelectTimetableDeps struct {
	Session Selector
}

type selectionForm struct {
	Year     int             `validate:"gt=0"`
	Semester domain.Semester `validate:"required"`
}

// ExecuteSelectTimetable switches the session to another (year, semester).
// The year need not exist yet.
// PRE: none
// POST: On nil error, the session selection is updated
func ExecuteSelectTimetable(input SelectTimetableInput, deps SelectTimetableDeps) (session.Selection, error) {
	current := deps.Session.Selection()
	form := selectionForm{Year: current.Year, Semester: current.Semester}

	if raw := strings.TrimSpace(input.Year); raw != "" {
		form.Year = 0
		if year, err := strconv.Atoi(raw); err == nil {
			form.Year = year
		}
	}
	if raw := strings.TrimSpace(input.Semester); raw != "" {
		form.Semester = ""
		if sem, err := domain.ParseSemester(raw); err == nil {
			form.Semester = sem
		}
	}
	if err := validateForm(form); err != nil {
		return current, err
	}

	sel := session.Selection{Year: form.Year, Semester: form.Semester}
	deps.Session.Select(sel)
	return sel, nil
}

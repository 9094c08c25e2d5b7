package projections

import "slices"

// DefaultYearOptions are offered even before any timetable is stored.
var DefaultYearOptions = []int{1, 2, 3, 4}

// YearLister defines the repository interface needed by the year selector.
type YearLister interface {
	ListYears() []int
}

// GetYearOptionsDeps holds dependencies for the year selector.
type GetYearOptionsDeps struct {
	Years YearLister
}

// QueryGetYearOptions returns the stored years merged with
// DefaultYearOptions, ascending and without duplicates.
func QueryGetYearOptions(deps GetYearOptionsDeps) []int {
	years := append(slices.Clone(DefaultYearOptions), deps.Years.ListYears()...)
	slices.Sort(years)
	return slices.Compact(years)
}

package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/domain"
)

// ValidateRequestSchema checks the request-level fields before conversion and
// returns every problem found. Individual forecast and activity entries are
// not checked here; Convert turns bad entries into warnings.
func ValidateRequestSchema(schema *RequestSchema) []error {
	var errs []error
	errs = append(errs, validateTrip(&schema.Trip)...)

	if schema.Budget == nil {
		errs = append(errs, fmt.Errorf("budget is required"))
	}

	for i, c := range schema.Preferences.AvoidCategories {
		if !domain.ValidCategories[strings.ToLower(strings.TrimSpace(c))] {
			errs = append(errs, fmt.Errorf("preferences.avoid_categories[%d]: unknown category %q", i, c))
		}
	}
	return errs
}

func validateTrip(t *TripImport) []error {
	var errs []error

	if len(t.Dates) > 0 {
		if t.StartDate != "" || t.EndDate != "" {
			errs = append(errs, fmt.Errorf("trip: use either dates or start_date/end_date, not both"))
		}
		for i, d := range t.Dates {
			if _, err := domain.ParseDate(d); err != nil {
				errs = append(errs, fmt.Errorf("trip.dates[%d]: %w", i, err))
			}
		}
		return errs
	}

	if t.StartDate == "" {
		errs = append(errs, fmt.Errorf("trip.start_date is required when trip.dates is empty"))
	}
	if t.EndDate == "" {
		errs = append(errs, fmt.Errorf("trip.end_date is required when trip.dates is empty"))
	}
	if len(errs) > 0 {
		return errs
	}

	start, startErr := domain.ParseDate(t.StartDate)
	if startErr != nil {
		errs = append(errs, fmt.Errorf("trip.start_date: %w", startErr))
	}
	end, endErr := domain.ParseDate(t.EndDate)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("trip.end_date: %w", endErr))
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, fmt.Errorf("trip.end_date %q is before start_date %q", t.EndDate, t.StartDate))
	}
	return errs
}

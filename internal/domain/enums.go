package domain

import "strings"

type Category string

const (
	CategorySightseeing   Category = "sightseeing"
	CategoryDining        Category = "dining"
	CategoryOutdoor       Category = "outdoor"
	CategoryIndoor        Category = "indoor"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[string]bool{
	"sightseeing": true, "dining": true, "outdoor": true,
	"indoor": true, "entertainment": true, "other": true,
}

// ParseCategory maps a raw category string onto a Category. The second
// return value is false when the input did not name a known category, in
// which case CategoryOther is returned.
func ParseCategory(raw string) (Category, bool) {
	c := strings.ToLower(strings.TrimSpace(raw))
	if ValidCategories[c] {
		return Category(c), true
	}
	return CategoryOther, false
}

// DefaultOutdoor reports whether activities in this category are treated as
// outdoor when the provider does not say.
func (c Category) DefaultOutdoor() bool {
	return c == CategoryOutdoor || c == CategorySightseeing
}

type TemperatureBand string

const (
	TempUnknown TemperatureBand = "unknown"
	TempCold    TemperatureBand = "cold"
	TempMild    TemperatureBand = "mild"
	TempWarm    TemperatureBand = "warm"
	TempHot     TemperatureBand = "hot"
)

type WarningCode string

const (
	WarnMissingForecast      WarningCode = "MISSING_FORECAST"
	WarnInvalidForecast      WarningCode = "INVALID_FORECAST"
	WarnRecordDropped        WarningCode = "RECORD_DROPPED"
	WarnDuplicateMerged      WarningCode = "DUPLICATE_MERGED"
	WarnEmptyCandidatePool   WarningCode = "EMPTY_CANDIDATE_POOL"
	WarnNoActivitiesForDay   WarningCode = "NO_ACTIVITIES_SCHEDULED"
	WarnBudgetExhausted      WarningCode = "BUDGET_EXHAUSTED"
	WarnUnmetPreference      WarningCode = "UNMET_PREFERENCE"
	WarnRainyDayNoOutdoor    WarningCode = "RAINY_DAY_NO_OUTDOOR"
	WarnDuplicateTripDate    WarningCode = "DUPLICATE_TRIP_DATE"
	WarnMalformedInputRecord WarningCode = "MALFORMED_RECORD"
)

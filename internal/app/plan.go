package app

import (
	"time"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
)

// ForecastRecord is one provider-neutral daily forecast. Provider adapters
// convert their wire shapes into this before planning.
type ForecastRecord struct {
	Date                     time.Time
	PrecipitationProbability *float64 // 0..1
	TemperatureC             *float64
	Humidity                 *float64
	Condition                string
}

// ActivityRecord is one provider-neutral raw activity. Pointer fields are nil
// when the provider did not supply them.
type ActivityRecord struct {
	Provider      string
	ID            string
	Name          string
	Category      string
	Tags          []string
	Venue         string
	Cost          *float64
	DurationMin   *int
	EarliestStart string // HH:MM, empty for start of day
	LatestEnd     string // HH:MM, empty for end of day
	Lat           *float64
	Lon           *float64
	Zone          string
	Indoor        *bool
	Rating        *float64 // 0..1
	Repeatable    bool
	MustSee       bool
	Dates         []time.Time
}

// PlanRequest is the single input of the planning core.
type PlanRequest struct {
	Destination string
	Dates       []time.Time
	Forecasts   []ForecastRecord
	// Activities holds raw records grouped by provider name.
	Activities  map[string][]ActivityRecord
	TotalBudget decimal.Decimal
	Preferences domain.Preferences
	// Warnings carries notes from adapters that ran before planning
	// (for example malformed provider entries) into the final itinerary.
	Warnings []domain.Warning
}

type PlanErrorCode string

const (
	ErrNoTripDates    PlanErrorCode = "NO_TRIP_DATES"
	ErrNegativeBudget PlanErrorCode = "NEGATIVE_BUDGET"
	ErrInvalidConfig  PlanErrorCode = "INVALID_CONFIG"
)

// PlanError is returned only for structurally impossible requests. Partial
// or malformed upstream data never produces a PlanError.
type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

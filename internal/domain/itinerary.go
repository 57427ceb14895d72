package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Warning is a non-fatal note recorded by any planning stage.
type Warning struct {
	Code       WarningCode `json:"code"`
	Date       *time.Time  `json:"date,omitempty"`
	ActivityID string      `json:"activity_id,omitempty"`
	Message    string      `json:"message"`
}

// NewDayWarning builds a warning scoped to a single trip date.
func NewDayWarning(code WarningCode, date time.Time, format string, args ...any) Warning {
	d := DateOnly(date)
	return Warning{Code: code, Date: &d, Message: fmt.Sprintf(format, args...)}
}

// Assignment places one activity into a time slot on a day.
type Assignment struct {
	Start    TimeOfDay       `json:"start"`
	End      TimeOfDay       `json:"end"`
	Activity Activity        `json:"activity"`
	Score    float64         `json:"score"`
	Cost     decimal.Decimal `json:"cost"`
}

// Overlaps reports whether two assignments conflict once bufferMin is kept
// free between them.
func (a Assignment) Overlaps(b Assignment, bufferMin int) bool {
	buf := TimeOfDay(bufferMin)
	return a.Start < b.End+buf && b.Start < a.End+buf
}

// DaySchedule is the ordered, conflict-free set of assignments for a date.
type DaySchedule struct {
	Date        time.Time       `json:"date"`
	Weather     DayWeather      `json:"weather"`
	Assignments []Assignment    `json:"assignments"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

func (d DaySchedule) IsEmpty() bool {
	return len(d.Assignments) == 0
}

// Score is the sum of assignment scores for the day.
func (d DaySchedule) Score() float64 {
	var total float64
	for _, a := range d.Assignments {
		total += a.Score
	}
	return total
}

// Summary carries the aggregate statistics handed to the presentation layer.
type Summary struct {
	Budget             decimal.Decimal `json:"budget"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	RemainingBudget    decimal.Decimal `json:"remaining_budget"`
	ActivityCount      int             `json:"activity_count"`
	DaysWithActivities int             `json:"days_with_activities"`
	CategoriesCovered  []Category      `json:"categories_covered"`
	TotalScore         float64         `json:"total_score"`
	// CostByCategory covers every category with a scheduled activity, free
	// ones included.
	CostByCategory map[Category]decimal.Decimal `json:"cost_by_category"`
	DailyCosts     []DayCost                    `json:"daily_costs"`
}

// DayCost is the estimated spend of one trip date.
type DayCost struct {
	Date       time.Time                    `json:"date"`
	Total      decimal.Decimal              `json:"total"`
	ByCategory map[Category]decimal.Decimal `json:"by_category"`
}

// Itinerary is the final planning output. It is not modified once assembled.
type Itinerary struct {
	Destination string        `json:"destination,omitempty"`
	Days        []DaySchedule `json:"days"`
	Warnings    []Warning     `json:"warnings"`
	Summary     Summary       `json:"summary"`
}

// WarningMessages flattens warnings into human-readable strings.
func (it *Itinerary) WarningMessages() []string {
	msgs := make([]string, 0, len(it.Warnings))
	for _, w := range it.Warnings {
		msgs = append(msgs, w.Message)
	}
	return msgs
}

// StartDate returns the first trip date, or the zero time for an empty itinerary.
func (it *Itinerary) StartDate() time.Time {
	if len(it.Days) == 0 {
		return time.Time{}
	}
	return it.Days[0].Date
}

// EndDate returns the last trip date, or the zero time for an empty itinerary.
func (it *Itinerary) EndDate() time.Time {
	if len(it.Days) == 0 {
		return time.Time{}
	}
	return it.Days[len(it.Days)-1].Date
}

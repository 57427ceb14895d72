package scheduler

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/candidate"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
)

type TripRequest struct {
	Dates       []time.Time
	Pool        *candidate.Pool
	Weather     []domain.DayWeather
	TotalBudget decimal.Decimal
	Preferences domain.Preferences
	Config      DayConfig
}

type TripResult struct {
	Days     []domain.DaySchedule
	Warnings []domain.Warning
	Skipped  []app.ConstraintBlocker
	Ledger   *BudgetLedger
}

// NormalizeDates sorts trip dates and drops duplicates with a warning.
func NormalizeDates(dates []time.Time) ([]time.Time, []domain.Warning) {
	var warnings []domain.Warning
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := domain.DateOnly(d)
		if seen[day] {
			warnings = append(warnings, domain.NewDayWarning(domain.WarnDuplicateTripDate, day,
				"trip date %s listed more than once", day.Format(domain.DateLayout)))
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out, warnings
}

// PlanTrip schedules every date in chronological order against one shared
// ledger, so spend on early days reduces what later days can use and unspent
// money rolls forward. Consumed non-repeatable activities leave the pool.
// The pool is mutated; callers must not reuse it across runs.
func PlanTrip(ctx context.Context, req TripRequest) (*TripResult, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}
	ledger, err := NewBudgetLedger(req.TotalBudget)
	if err != nil {
		return nil, err
	}
	dates, _ := NormalizeDates(req.Dates)

	weatherByDate := make(map[time.Time]domain.DayWeather, len(req.Weather))
	for _, w := range req.Weather {
		weatherByDate[domain.DateOnly(w.Date)] = w
	}

	initial := req.Pool.Activities()
	scheduled := make(map[string]bool)
	lastSkip := make(map[string]app.ConstraintBlocker)
	result := &TripResult{Ledger: ledger}
	exhaustedWarned := false

	for i, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		freeOnly := ledger.Exhausted()
		if freeOnly && !exhaustedWarned {
			exhaustedWarned = true
			result.Warnings = append(result.Warnings, domain.NewDayWarning(domain.WarnBudgetExhausted, date,
				"budget of %s exhausted before %s; remaining %d day(s) use free activities only",
				ledger.Ceiling().StringFixed(2), date.Format(domain.DateLayout), len(dates)-i))
		}

		weather, ok := weatherByDate[date]
		if !ok {
			weather = domain.NeutralWeather(date)
		}

		candidates := req.Pool.Activities()
		day := ScheduleDay(DayRequest{
			Date:        date,
			Candidates:  candidates,
			Weather:     weather,
			Preferences: req.Preferences,
			Config:      req.Config,
			Reserved:    reserveForLater(candidates, date, req.Preferences, ledger),
			FreeOnly:    freeOnly,
		}, ledger)

		for _, a := range day.Schedule.Assignments {
			scheduled[a.Activity.ID] = true
			delete(lastSkip, a.Activity.ID)
			if !a.Activity.Repeatable {
				req.Pool.Remove(a.Activity.ID)
			}
		}
		for _, b := range day.Skipped {
			if !scheduled[b.EntityID] {
				lastSkip[b.EntityID] = b
			}
		}

		result.Days = append(result.Days, day.Schedule)
		result.Skipped = append(result.Skipped, day.Skipped...)
		result.Warnings = append(result.Warnings, day.Warnings...)
		if w, ok := rainyDayWarning(day.Schedule, req.Preferences); ok {
			result.Warnings = append(result.Warnings, w)
		}
	}

	result.Warnings = append(result.Warnings, unmetPreferences(initial, scheduled, lastSkip, req.Preferences)...)
	return result, nil
}

// reserveForLater sums the cost of must-see activities that can only happen
// after date, capped at what the ledger still holds.
func reserveForLater(candidates []domain.Activity, date time.Time, prefs domain.Preferences, ledger *BudgetLedger) decimal.Decimal {
	reserved := decimal.Zero
	for _, a := range candidates {
		if prefs.IsMustSee(a) && a.OnlyAfter(date) && !prefs.Avoids(a.Category) && ledger.CanAfford(a.Cost) {
			reserved = reserved.Add(a.Cost)
		}
	}
	return decimal.Min(reserved, decimal.Max(ledger.Remaining(), decimal.Zero))
}

func rainyDayWarning(day domain.DaySchedule, prefs domain.Preferences) (domain.Warning, bool) {
	if !prefs.WantsOutdoor() || !day.Weather.Rainy() {
		return domain.Warning{}, false
	}
	for _, a := range day.Assignments {
		if a.Activity.Outdoor {
			return domain.Warning{}, false
		}
	}
	return domain.NewDayWarning(domain.WarnRainyDayNoOutdoor, day.Date,
		"no outdoor activity found for rainy day %s (%.0f%% chance of rain)",
		day.Date.Format(domain.DateLayout), day.Weather.PrecipitationProbability*100), true
}

// unmetPreferences reports every candidate that never made it into the plan
// with the last reason it was turned down, and declared interests that no
// scheduled activity satisfies. Candidates in an avoided category are left
// out; the traveller asked for that.
func unmetPreferences(
	initial []domain.Activity,
	scheduled map[string]bool,
	lastSkip map[string]app.ConstraintBlocker,
	prefs domain.Preferences,
) []domain.Warning {
	var warnings []domain.Warning
	for _, a := range initial {
		if scheduled[a.ID] {
			continue
		}
		b, skipped := lastSkip[a.ID]
		var msg string
		switch {
		case prefs.IsMustSee(a):
			msg = fmt.Sprintf("must-see %s could not be scheduled", a.Name)
		case skipped && b.Code != app.BlockerAvoidedCategory:
			msg = fmt.Sprintf("%s could not be scheduled", a.Name)
		default:
			continue
		}
		if skipped {
			msg += ": " + b.Message
		}
		warnings = append(warnings, domain.Warning{Code: domain.WarnUnmetPreference, ActivityID: a.ID, Message: msg})
	}

	for _, interest := range prefs.Interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		single := domain.Preferences{Interests: []string{interest}}
		var matching, met bool
		for _, a := range initial {
			if !single.Matches(a) {
				continue
			}
			matching = true
			if scheduled[a.ID] {
				met = true
				break
			}
		}
		switch {
		case !matching:
			warnings = append(warnings, domain.Warning{Code: domain.WarnUnmetPreference,
				Message: fmt.Sprintf("no activities match interest %q", interest)})
		case !met:
			warnings = append(warnings, domain.Warning{Code: domain.WarnUnmetPreference,
				Message: fmt.Sprintf("no %q activity could be scheduled", interest)})
		}
	}
	return warnings
}

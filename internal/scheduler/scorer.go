package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
)

// Weights blends the four normalized sub-scores into one composite score.
type Weights struct {
	PreferenceFit float64 `json:"preference_fit" yaml:"preference_fit"`
	WeatherFit    float64 `json:"weather_fit" yaml:"weather_fit"`
	BudgetFit     float64 `json:"budget_fit" yaml:"budget_fit"`
	Popularity    float64 `json:"popularity" yaml:"popularity"`
}

func DefaultWeights() Weights {
	return Weights{
		PreferenceFit: 0.35,
		WeatherFit:    0.30,
		BudgetFit:     0.20,
		Popularity:    0.15,
	}
}

func (w Weights) Validate() error {
	named := []struct {
		name string
		v    float64
	}{
		{"preference_fit", w.PreferenceFit},
		{"weather_fit", w.WeatherFit},
		{"budget_fit", w.BudgetFit},
		{"popularity", w.Popularity},
	}
	for _, n := range named {
		if n.v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %.2f", n.name, n.v)
		}
	}
	if w.PreferenceFit+w.WeatherFit+w.BudgetFit+w.Popularity <= 0 {
		return fmt.Errorf("at least one scoring weight must be positive")
	}
	return nil
}

const (
	// DefaultSoftCap is the share of the remaining budget a single activity may
	// cost before its budget fit starts to decay.
	DefaultSoftCap = 0.25

	baselinePreference = 0.4
)

type ScoringInput struct {
	Activity        domain.Activity
	Date            time.Time
	RemainingBudget decimal.Decimal
	Preferences     domain.Preferences
	Weather         domain.DayWeather
	Weights         Weights
	SoftCap         float64
}

// Breakdown holds the raw sub-scores, each in [0,1], before weighting.
type Breakdown struct {
	PreferenceFit float64 `json:"preference_fit"`
	WeatherFit    float64 `json:"weather_fit"`
	BudgetFit     float64 `json:"budget_fit"`
	Popularity    float64 `json:"popularity"`
}

type ScoredCandidate struct {
	Activity  domain.Activity
	Date      time.Time
	Score     float64
	Feasible  bool
	Breakdown Breakdown
	Reasons   []app.ScoreReason
	Blocker   *app.ConstraintBlocker
}

// ScoreActivity computes the composite desirability of an activity on a date.
// It is pure: identical inputs always produce identical output.
func ScoreActivity(input ScoringInput) ScoredCandidate {
	a := input.Activity
	result := ScoredCandidate{
		Activity: a,
		Date:     domain.DateOnly(input.Date),
		Feasible: true,
	}

	if input.Preferences.Avoids(a.Category) {
		result.Feasible = false
		result.Blocker = blocker(input, app.BlockerAvoidedCategory,
			fmt.Sprintf("%s is in avoided category %s", a.Name, a.Category))
		return result
	}
	if !a.AvailableOnDate(input.Date) {
		result.Feasible = false
		result.Blocker = blocker(input, app.BlockerNotAvailableOnDate,
			fmt.Sprintf("%s is not offered on %s", a.Name, result.Date.Format(domain.DateLayout)))
		return result
	}

	factors := []struct {
		weight float64
		fn     func(ScoringInput) (float64, app.ScoreReason)
		out    *float64
	}{
		{input.Weights.PreferenceFit, preferenceFit, &result.Breakdown.PreferenceFit},
		{input.Weights.WeatherFit, weatherFit, &result.Breakdown.WeatherFit},
		{input.Weights.BudgetFit, budgetFit, &result.Breakdown.BudgetFit},
		{input.Weights.Popularity, popularityFit, &result.Breakdown.Popularity},
	}
	var score float64
	for _, f := range factors {
		sub, reason := f.fn(input)
		*f.out = sub
		delta := sub * f.weight
		reason.WeightDelta = &delta
		result.Reasons = append(result.Reasons, reason)
		score += delta
	}
	result.Score = score

	if a.Cost.GreaterThan(input.RemainingBudget) {
		result.Feasible = false
		result.Blocker = blocker(input, app.BlockerOverBudget,
			fmt.Sprintf("%s costs %s, only %s left", a.Name, a.Cost.StringFixed(2), input.RemainingBudget.StringFixed(2)))
	}
	return result
}

func preferenceFit(input ScoringInput) (float64, app.ScoreReason) {
	switch {
	case input.Preferences.IsMustSee(input.Activity):
		return 1, app.ScoreReason{Code: app.ReasonMustSee, Message: "On the must-see list"}
	case input.Preferences.Matches(input.Activity):
		return 1, app.ScoreReason{Code: app.ReasonInterestMatch, Message: "Matches your interests"}
	case input.Preferences.MatchesMeal(input.Activity):
		return 1, app.ScoreReason{Code: app.ReasonMealMatch, Message: "Matches your meal preferences"}
	}
	return baselinePreference, app.ScoreReason{Code: app.ReasonBaselineInterest, Message: "No declared interest matched"}
}

func weatherFit(input ScoringInput) (float64, app.ScoreReason) {
	w := input.Weather
	s := w.Suitability(input.Activity.Outdoor)
	switch {
	case w.Missing:
		return s, app.ScoreReason{Code: app.ReasonWeatherUnknown, Message: "No forecast, weather treated as neutral"}
	case input.Activity.Outdoor && w.Rainy():
		return s, app.ScoreReason{Code: app.ReasonWeatherPenalty,
			Message: fmt.Sprintf("Outdoor with %.0f%% chance of rain", w.PrecipitationProbability*100)}
	case input.Activity.Outdoor:
		return s, app.ScoreReason{Code: app.ReasonWeatherFavorable, Message: "Weather suits an outdoor activity"}
	}
	return s, app.ScoreReason{Code: app.ReasonWeatherFavorable, Message: "Indoor, unaffected by weather"}
}

// budgetFit is 1 up to remaining*softCap, then decays linearly to 0 at
// cost == remaining. Anything above remaining also scores 0.
func budgetFit(input ScoringInput) (float64, app.ScoreReason) {
	cost := input.Activity.Cost.InexactFloat64()
	remaining := input.RemainingBudget.InexactFloat64()
	softCap := input.SoftCap
	if softCap <= 0 || softCap > 1 {
		softCap = DefaultSoftCap
	}

	threshold := remaining * softCap
	if cost <= threshold {
		return 1, app.ScoreReason{Code: app.ReasonWithinSoftCap, Message: "Comfortably within budget"}
	}
	if cost >= remaining || softCap == 1 {
		return 0, app.ScoreReason{Code: app.ReasonBudgetStretch, Message: "Uses all remaining budget"}
	}
	fit := domain.Clamp((remaining-cost)/(remaining*(1-softCap)), 0, 1)
	return fit, app.ScoreReason{Code: app.ReasonBudgetStretch,
		Message: fmt.Sprintf("Takes %.0f%% of remaining budget", cost/remaining*100)}
}

func popularityFit(input ScoringInput) (float64, app.ScoreReason) {
	p := domain.Clamp(input.Activity.Popularity, 0, 1)
	return p, app.ScoreReason{Code: app.ReasonPopularity, Message: fmt.Sprintf("Rated %.2f", p)}
}

func blocker(input ScoringInput, code app.ConstraintBlockerCode, msg string) *app.ConstraintBlocker {
	return &app.ConstraintBlocker{
		EntityType: "activity",
		EntityID:   input.Activity.ID,
		Date:       domain.DateOnly(input.Date),
		Code:       code,
		Message:    msg,
	}
}

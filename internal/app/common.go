package app

import "time"

type ScoreReasonCode string

const (
	ReasonInterestMatch    ScoreReasonCode = "INTEREST_MATCH"
	ReasonMealMatch        ScoreReasonCode = "MEAL_MATCH"
	ReasonMustSee          ScoreReasonCode = "MUST_SEE"
	ReasonBaselineInterest ScoreReasonCode = "BASELINE_INTEREST"
	ReasonWeatherFavorable ScoreReasonCode = "WEATHER_FAVORABLE"
	ReasonWeatherPenalty   ScoreReasonCode = "WEATHER_PENALTY"
	ReasonWeatherUnknown   ScoreReasonCode = "WEATHER_UNKNOWN"
	ReasonWithinSoftCap    ScoreReasonCode = "WITHIN_SOFT_CAP"
	ReasonBudgetStretch    ScoreReasonCode = "BUDGET_STRETCH"
	ReasonPopularity       ScoreReasonCode = "POPULARITY"
)

type ScoreReason struct {
	Code        ScoreReasonCode `json:"code"`
	Message     string          `json:"message"`
	WeightDelta *float64        `json:"weight_delta,omitempty"`
}

type ConstraintBlockerCode string

const (
	BlockerOverBudget         ConstraintBlockerCode = "OVER_BUDGET"
	BlockerNotAvailableOnDate ConstraintBlockerCode = "NOT_AVAILABLE_ON_DATE"
	BlockerAvoidedCategory    ConstraintBlockerCode = "AVOIDED_CATEGORY"
	BlockerNoFeasibleSlot     ConstraintBlockerCode = "NO_FEASIBLE_SLOT"
	BlockerDailyCapReached    ConstraintBlockerCode = "DAILY_CAP_REACHED"
	BlockerDailySpendCap      ConstraintBlockerCode = "DAILY_SPEND_CAP"
	// BlockerBudgetViolation marks a commit the ledger refused. Affordability is
	// checked before every commit, so this never appears in a correct run.
	BlockerBudgetViolation ConstraintBlockerCode = "INTERNAL_BUDGET_VIOLATION"
)

type ConstraintBlocker struct {
	EntityType string                `json:"entity_type"`
	EntityID   string                `json:"entity_id"`
	Date       time.Time             `json:"date"`
	Code       ConstraintBlockerCode `json:"code"`
	Message    string                `json:"message"`
}

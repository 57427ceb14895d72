package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannerProfile is the saved set of planning tunables. It overrides the
// config file when present.
type PlannerProfile struct {
	WeightPreference float64
	WeightWeather    float64
	WeightBudget     float64
	WeightPopularity float64
	SoftCap          float64
	BufferMin        int
	DayStart         TimeOfDay
	DayEnd           TimeOfDay
	MaxPerDay        int
	MaxDailySpend    decimal.Decimal
	// Interests are default interests merged into every request.
	Interests []string
	UpdatedAt time.Time
}

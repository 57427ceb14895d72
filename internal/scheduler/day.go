package scheduler

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
)

// DayConfig holds the tunables shared by every day of a trip.
type DayConfig struct {
	DayStart      domain.TimeOfDay
	DayEnd        domain.TimeOfDay
	BufferMin     int
	MaxActivities int             // 0 means no cap
	MaxDailySpend decimal.Decimal // zero means no cap
	Weights       Weights
	SoftCap       float64
}

func DefaultDayConfig() DayConfig {
	return DayConfig{
		DayStart:      domain.MustTimeOfDay("08:00"),
		DayEnd:        domain.MustTimeOfDay("22:00"),
		BufferMin:     30,
		MaxActivities: 4,
		Weights:       DefaultWeights(),
		SoftCap:       DefaultSoftCap,
	}
}

func (c DayConfig) Validate() error {
	if c.DayEnd <= c.DayStart {
		return fmt.Errorf("day end %s must be after day start %s", c.DayEnd, c.DayStart)
	}
	if c.DayEnd > domain.EndOfDay {
		return fmt.Errorf("day end %s is past midnight", c.DayEnd)
	}
	if c.BufferMin < 0 {
		return fmt.Errorf("buffer must be non-negative, got %d", c.BufferMin)
	}
	if c.MaxActivities < 0 {
		return fmt.Errorf("max activities per day must be non-negative, got %d", c.MaxActivities)
	}
	if c.MaxDailySpend.IsNegative() {
		return fmt.Errorf("max daily spend must be non-negative, got %s", c.MaxDailySpend)
	}
	if c.SoftCap <= 0 || c.SoftCap > 1 {
		return fmt.Errorf("soft cap must be in (0, 1], got %.2f", c.SoftCap)
	}
	return c.Weights.Validate()
}

type DayRequest struct {
	Date        time.Time
	Candidates  []domain.Activity
	Weather     domain.DayWeather
	Preferences domain.Preferences
	Config      DayConfig
	// Reserved is budget held back for must-see activities on later dates.
	// Only must-see candidates may spend it.
	Reserved decimal.Decimal
	FreeOnly bool
}

type DayResult struct {
	Schedule domain.DaySchedule
	// Skipped holds the last rejection for every candidate that was not placed.
	Skipped  []app.ConstraintBlocker
	Warnings []domain.Warning
}

// ScheduleDay picks and places the day's activities. Every candidate is
// scored once against the money available at the start of the day, then
// selectDay finds the highest-scoring set that fits the day window, the
// buffers, the per-day cap and the budget. The chosen set is committed to
// the ledger in start order.
func ScheduleDay(req DayRequest, ledger *BudgetLedger) DayResult {
	cfg := req.Config
	date := domain.DateOnly(req.Date)

	var (
		viable   []ScoredCandidate
		lastSkip = make(map[string]app.ConstraintBlocker)
	)
	for _, a := range req.Candidates {
		if req.FreeOnly && !a.IsFree() {
			continue
		}
		sc := ScoreActivity(ScoringInput{
			Activity:        a,
			Date:            date,
			RemainingBudget: spendable(req, ledger, decimal.Zero, a),
			Preferences:     req.Preferences,
			Weather:         req.Weather,
			Weights:         cfg.Weights,
			SoftCap:         cfg.SoftCap,
		})
		if !sc.Feasible {
			lastSkip[a.ID] = *sc.Blocker
			continue
		}
		viable = append(viable, sc)
	}

	CanonicalSort(viable)
	options := make([]dayOption, 0, len(viable))
	for _, sc := range viable {
		a := sc.Activity
		lo := max(cfg.DayStart, a.EarliestStart)
		hi := min(cfg.DayEnd, a.LatestEnd)
		if hi-lo < domain.TimeOfDay(a.DurationMin) {
			lastSkip[a.ID] = noSlotBlocker(a, date)
			continue
		}
		options = append(options, dayOption{scored: sc, lo: lo, hi: hi, mustSee: req.Preferences.IsMustSee(a)})
	}

	var (
		assignments []domain.Assignment
		spent       = decimal.Zero
		chosen      = make(map[string]bool)
	)
	for _, p := range selectDay(options, limitsFor(req, ledger)) {
		a := p.option.scored.Activity
		chosen[a.ID] = true
		if err := ledger.Commit(a.ID, date, a.Cost); err != nil {
			code := app.BlockerBudgetViolation
			if !errors.Is(err, ErrBudgetExceeded) {
				code = app.BlockerOverBudget
			}
			lastSkip[a.ID] = app.ConstraintBlocker{
				EntityType: "activity", EntityID: a.ID, Date: date,
				Code: code, Message: err.Error(),
			}
			continue
		}
		spent = spent.Add(a.Cost)
		assignments = append(assignments, domain.Assignment{
			Start:    p.start,
			End:      p.start + domain.TimeOfDay(a.DurationMin),
			Activity: a,
			Score:    p.option.scored.Score,
			Cost:     a.Cost,
		})
	}
	slices.SortFunc(assignments, func(a, b domain.Assignment) int { return int(a.Start - b.Start) })

	for _, o := range options {
		if !chosen[o.scored.Activity.ID] {
			lastSkip[o.scored.Activity.ID] = explainUnselected(req, ledger, spent, o.scored.Activity, assignments)
		}
	}

	result := DayResult{
		Schedule: domain.DaySchedule{
			Date:        date,
			Weather:     req.Weather,
			Assignments: assignments,
			TotalCost:   spent,
		},
	}
	for _, a := range req.Candidates {
		if b, ok := lastSkip[a.ID]; ok {
			result.Skipped = append(result.Skipped, explainBudgetSkip(req, ledger, spent, b))
		}
	}
	if len(assignments) == 0 {
		result.Warnings = append(result.Warnings, domain.NewDayWarning(domain.WarnNoActivitiesForDay, date,
			"no activities scheduled for %s", date.Format(domain.DateLayout)))
	}
	return result
}

// explainUnselected names the constraint that keeps a feasible candidate out
// of the chosen set, checked against the day as it was finally planned.
func explainUnselected(req DayRequest, ledger *BudgetLedger, spent decimal.Decimal, a domain.Activity, assignments []domain.Assignment) app.ConstraintBlocker {
	cfg := req.Config
	date := domain.DateOnly(req.Date)
	b := app.ConstraintBlocker{EntityType: "activity", EntityID: a.ID, Date: date}

	if cfg.MaxActivities > 0 && len(assignments) >= cfg.MaxActivities {
		b.Code = app.BlockerDailyCapReached
		b.Message = fmt.Sprintf("day already has %d activities", cfg.MaxActivities)
		return b
	}
	if _, ok := EarliestSlot(a, assignments, cfg); !ok {
		return noSlotBlocker(a, date)
	}
	if left := spendable(req, ledger, spent, a); a.Cost.GreaterThan(left) {
		b.Code = app.BlockerOverBudget
		b.Message = fmt.Sprintf("%s costs %s, only %s left", a.Name, a.Cost.StringFixed(2), left.StringFixed(2))
		return b
	}
	b.Code = app.BlockerNoFeasibleSlot
	b.Message = fmt.Sprintf("%s does not fit around the higher-scoring activities", a.Name)
	return b
}

func noSlotBlocker(a domain.Activity, date time.Time) app.ConstraintBlocker {
	return app.ConstraintBlocker{
		EntityType: "activity", EntityID: a.ID, Date: date,
		Code:    app.BlockerNoFeasibleSlot,
		Message: fmt.Sprintf("no free %d-minute slot for %s", a.DurationMin, a.Name),
	}
}

// spendable is the budget an activity may draw on right now: the ledger's
// balance, minus reserved money unless the activity is must-see, capped by
// what is left of the daily spend limit.
func spendable(req DayRequest, ledger *BudgetLedger, spent decimal.Decimal, a domain.Activity) decimal.Decimal {
	budget := ledger.Remaining()
	if !req.Preferences.IsMustSee(a) {
		budget = budget.Sub(req.Reserved)
	}
	if req.Config.MaxDailySpend.IsPositive() {
		budget = decimal.Min(budget, req.Config.MaxDailySpend.Sub(spent))
	}
	return decimal.Max(budget, decimal.Zero)
}

// explainBudgetSkip refines an OVER_BUDGET blocker when the real limit was the
// daily cap or money reserved for a must-see activity.
func explainBudgetSkip(req DayRequest, ledger *BudgetLedger, spent decimal.Decimal, b app.ConstraintBlocker) app.ConstraintBlocker {
	if b.Code != app.BlockerOverBudget {
		return b
	}
	a := b.EntityID
	var cost decimal.Decimal
	for _, c := range req.Candidates {
		if c.ID == a {
			cost = c.Cost
			break
		}
	}
	if !ledger.CanAfford(cost) {
		return b
	}
	if req.Config.MaxDailySpend.IsPositive() && spent.Add(cost).GreaterThan(req.Config.MaxDailySpend) {
		b.Code = app.BlockerDailySpendCap
		b.Message = fmt.Sprintf("daily spend limit %s reached", req.Config.MaxDailySpend.StringFixed(2))
		return b
	}
	b.Message = "remaining budget is reserved for must-see activities on later days"
	return b
}

// EarliestSlot finds the first start time inside the activity's window and
// the day window that keeps the buffer to every existing assignment.
func EarliestSlot(a domain.Activity, existing []domain.Assignment, cfg DayConfig) (domain.TimeOfDay, bool) {
	lo := max(cfg.DayStart, a.EarliestStart)
	hi := min(cfg.DayEnd, a.LatestEnd)
	dur := domain.TimeOfDay(a.DurationMin)
	if hi-lo < dur {
		return 0, false
	}

	candidates := []domain.TimeOfDay{lo}
	for _, e := range existing {
		if s := e.End + domain.TimeOfDay(cfg.BufferMin); s > lo {
			candidates = append(candidates, s)
		}
	}
	slices.Sort(candidates)

	for _, s := range candidates {
		if s+dur > hi {
			break
		}
		slot := domain.Assignment{Start: s, End: s + dur}
		clash := false
		for _, e := range existing {
			if slot.Overlaps(e, cfg.BufferMin) {
				clash = true
				break
			}
		}
		if !clash {
			return s, true
		}
	}
	return 0, false
}

package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/wayfarer/internal/candidate"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomTrip(rng *rand.Rand) ([]domain.Activity, TripRequest) {
	numDays := rng.Intn(5) + 1
	days := make([]int, numDays)
	for i := range days {
		days[i] = i + 1
	}
	tripDates := dates(days...)

	n := rng.Intn(15) + 1
	activities := make([]domain.Activity, n)
	for i := range activities {
		duration := 30 + rng.Intn(6)*30
		start := 6*60 + rng.Intn(14*60)
		end := min(start+duration+rng.Intn(6*60), 24*60)
		if end-start < duration {
			start = end - duration
		}
		opts := []testutil.ActivityOption{
			testutil.WithCost(float64(rng.Intn(121))),
			testutil.WithDuration(duration),
			testutil.WithWindow(domain.TimeOfDay(start).String(), domain.TimeOfDay(end).String()),
			testutil.WithPopularity(float64(rng.Intn(101)) / 100),
		}
		if rng.Intn(3) == 0 {
			opts = append(opts, testutil.Outdoor())
		}
		if rng.Intn(10) == 0 {
			opts = append(opts, testutil.Repeatable())
		}
		if rng.Intn(8) == 0 {
			opts = append(opts, testutil.MustSee())
		}
		if rng.Intn(4) == 0 {
			opts = append(opts, testutil.OnDates(tripDates[rng.Intn(numDays)]))
		}
		activities[i] = testutil.NewTestActivity(fmt.Sprintf("act-%02d", i), opts...)
	}

	weather := make([]domain.DayWeather, 0, numDays)
	for _, d := range tripDates {
		if rng.Intn(5) == 0 {
			continue // missing forecast
		}
		weather = append(weather, testutil.NewTestWeather(d, float64(rng.Intn(101))/100))
	}

	cfg := DefaultDayConfig()
	cfg.BufferMin = rng.Intn(4) * 15
	cfg.MaxActivities = rng.Intn(5)
	if rng.Intn(3) == 0 {
		cfg.MaxDailySpend = decimal.NewFromInt(int64(rng.Intn(100) + 1))
	}

	return activities, TripRequest{
		Dates:       tripDates,
		Weather:     weather,
		TotalBudget: decimal.NewFromInt(int64(rng.Intn(300))),
		Preferences: domain.Preferences{Interests: []string{"outdoor"}},
		Config:      cfg,
	}
}

func TestPlanTrip_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		activities, req := randomTrip(rng)
		req.Pool = candidate.NewPoolFromActivities(activities...)

		res, err := PlanTrip(context.Background(), req)
		require.NoError(t, err, "trial %d", trial)

		// Invariant 1: total committed cost never exceeds the budget.
		total := decimal.Zero
		for _, d := range res.Days {
			for _, a := range d.Assignments {
				total = total.Add(a.Cost)
			}
		}
		assert.True(t, total.LessThanOrEqual(req.TotalBudget),
			"trial %d: spent %s of %s", trial, total, req.TotalBudget)
		assert.True(t, total.Equal(res.Ledger.Committed()), "trial %d: ledger matches assignments", trial)

		seen := map[string]int{}
		for _, d := range res.Days {
			// Invariant 2: no overlaps once the buffer is added.
			for i := 0; i < len(d.Assignments); i++ {
				a := d.Assignments[i]
				assert.GreaterOrEqual(t, a.Start, max(req.Config.DayStart, a.Activity.EarliestStart), "trial %d", trial)
				assert.LessOrEqual(t, a.End, min(req.Config.DayEnd, a.Activity.LatestEnd), "trial %d", trial)
				for j := i + 1; j < len(d.Assignments); j++ {
					assert.False(t, a.Overlaps(d.Assignments[j], req.Config.BufferMin),
						"trial %d: %s overlaps %s on %s", trial, a.Activity.ID, d.Assignments[j].Activity.ID, d.Date)
				}
			}
			if req.Config.MaxActivities > 0 {
				assert.LessOrEqual(t, len(d.Assignments), req.Config.MaxActivities, "trial %d", trial)
			}
			if req.Config.MaxDailySpend.IsPositive() {
				assert.True(t, d.TotalCost.LessThanOrEqual(req.Config.MaxDailySpend), "trial %d", trial)
			}

			perDay := map[string]bool{}
			for _, a := range d.Assignments {
				assert.False(t, perDay[a.Activity.ID], "trial %d: %s twice on one day", trial, a.Activity.ID)
				perDay[a.Activity.ID] = true
				assert.True(t, a.Activity.AvailableOnDate(d.Date), "trial %d: %s off its dates", trial, a.Activity.ID)
				if !a.Activity.Repeatable {
					seen[a.Activity.ID]++
				}
			}
		}
		// Invariant 3: non-repeatable activities appear at most once trip-wide.
		for id, n := range seen {
			assert.Equal(t, 1, n, "trial %d: %s booked %d times", trial, id, n)
		}

		// Invariant 4: the internal budget violation never surfaces.
		for _, s := range res.Skipped {
			assert.NotEqual(t, "INTERNAL_BUDGET_VIOLATION", string(s.Code), "trial %d", trial)
		}
	}
}

func TestPlanTrip_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		activities, req := randomTrip(rng)

		req.Pool = candidate.NewPoolFromActivities(activities...)
		first, err := PlanTrip(context.Background(), req)
		require.NoError(t, err)

		req.Pool = candidate.NewPoolFromActivities(activities...)
		second, err := PlanTrip(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, first.Days, second.Days, "trial %d", trial)
		assert.Equal(t, first.Warnings, second.Warnings, "trial %d", trial)
	}
}

func TestPlanTrip_SingleDayMonotoneInBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 100; trial++ {
		activities, req := randomTrip(rng)
		req.Dates = dates(1)
		req.Weather = []domain.DayWeather{testutil.NewTestWeather(testutil.Date(1), float64(rng.Intn(101))/100)}

		prev := -1.0
		for _, budget := range []int64{0, 15, 40, 80, 160, 400} {
			req.TotalBudget = decimal.NewFromInt(budget)
			req.Pool = candidate.NewPoolFromActivities(activities...)
			res, err := PlanTrip(context.Background(), req)
			require.NoError(t, err, "trial %d", trial)

			score := totalScore(res.Days)
			assert.GreaterOrEqual(t, score+1e-9, prev, "trial %d: budget %d", trial, budget)
			prev = score
		}
	}
}

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/wayfarer/internal/candidate"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dates(days ...int) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = testutil.Date(d)
	}
	return out
}

func tripRequest(budget float64, days []time.Time, activities ...domain.Activity) TripRequest {
	var weather []domain.DayWeather
	for _, d := range days {
		weather = append(weather, testutil.NewTestWeather(d, 0.1))
	}
	return TripRequest{
		Dates:       days,
		Pool:        candidate.NewPoolFromActivities(activities...),
		Weather:     weather,
		TotalBudget: decimal.NewFromFloat(budget),
		Config:      DefaultDayConfig(),
	}
}

func warningsWith(ws []domain.Warning, code domain.WarningCode) []domain.Warning {
	var out []domain.Warning
	for _, w := range ws {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

func totalScore(days []domain.DaySchedule) float64 {
	var s float64
	for _, d := range days {
		s += d.Score()
	}
	return s
}

// museumHikeConcert is the three-day scenario: a rainy second day, one
// expensive concert and a budget of 300.
func museumHikeConcert(maxPerDay int) TripRequest {
	req := tripRequest(300, dates(1, 2, 3),
		testutil.NewTestActivity("museum", testutil.WithCost(20), testutil.WithPopularity(0.9), testutil.WithDuration(120)),
		testutil.NewTestActivity("hike", testutil.WithCost(0), testutil.Outdoor(), testutil.WithPopularity(0.8), testutil.WithDuration(180)),
		testutil.NewTestActivity("concert", testutil.WithCost(150), testutil.WithPopularity(0.95), testutil.WithDuration(150)),
	)
	req.Weather = []domain.DayWeather{
		testutil.NewTestWeather(testutil.Date(1), 0.1),
		testutil.NewTestWeather(testutil.Date(2), 0.9),
		testutil.NewTestWeather(testutil.Date(3), 0.2),
	}
	req.Config.MaxActivities = maxPerDay
	return req
}

func TestPlanTrip_MuseumHikeConcertScenario(t *testing.T) {
	req := museumHikeConcert(1)
	rainy := req.Weather[1]

	// On the rainy day the hike ranks below the museum.
	hike, _ := req.Pool.Get("hike")
	museum, _ := req.Pool.Get("museum")
	score := func(a domain.Activity) float64 {
		return ScoreActivity(ScoringInput{
			Activity: a, Date: rainy.Date, RemainingBudget: decimal.NewFromInt(300),
			Weather: rainy, Weights: DefaultWeights(), SoftCap: DefaultSoftCap,
		}).Score
	}
	assert.Less(t, score(hike), score(museum))

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Days, 3)

	ids := make([]string, 3)
	for i, d := range res.Days {
		require.Len(t, d.Assignments, 1, "day %d", i+1)
		ids[i] = d.Assignments[0].Activity.ID
	}
	assert.Equal(t, []string{"museum", "concert", "hike"}, ids,
		"the hike waits for a dry day and the concert takes the rainy one")
	assert.Equal(t, "170", res.Ledger.Committed().String())
	assert.True(t, res.Ledger.Committed().LessThanOrEqual(decimal.NewFromInt(300)))
}

func TestPlanTrip_UnlimitedDayPacksEverythingOnce(t *testing.T) {
	res, err := PlanTrip(context.Background(), museumHikeConcert(0))
	require.NoError(t, err)

	count := map[string]int{}
	for _, d := range res.Days {
		for _, a := range d.Assignments {
			count[a.Activity.ID]++
		}
	}
	assert.Equal(t, map[string]int{"museum": 1, "hike": 1, "concert": 1}, count)
	assert.Len(t, warningsWith(res.Warnings, domain.WarnNoActivitiesForDay), 2)
}

func TestPlanTrip_RepeatableOncePerDay(t *testing.T) {
	req := tripRequest(100, dates(1, 2, 3),
		testutil.NewTestActivity("breakfast", testutil.Repeatable(), testutil.WithCost(5)),
	)

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)
	for _, d := range res.Days {
		require.Len(t, d.Assignments, 1)
		assert.Equal(t, "breakfast", d.Assignments[0].Activity.ID)
	}
	assert.Equal(t, "15", res.Ledger.Committed().String())
}

func TestPlanTrip_BudgetExhaustedFallsBackToFree(t *testing.T) {
	req := tripRequest(50, dates(1, 2, 3),
		testutil.NewTestActivity("dinner", testutil.WithCost(50), testutil.WithPopularity(1)),
		testutil.NewTestActivity("park", testutil.WithCost(0), testutil.WithPopularity(0.1)),
		testutil.NewTestActivity("square", testutil.WithCost(0), testutil.WithPopularity(0.1)),
	)
	req.Preferences = domain.Preferences{Interests: []string{"dinner"}}
	req.Config.MaxActivities = 1

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "dinner", res.Days[0].Assignments[0].Activity.ID)
	assert.True(t, res.Days[1].Assignments[0].Activity.IsFree())
	assert.True(t, res.Days[2].Assignments[0].Activity.IsFree())

	exhausted := warningsWith(res.Warnings, domain.WarnBudgetExhausted)
	require.Len(t, exhausted, 1, "the trip-level warning is recorded once")
	assert.True(t, exhausted[0].Date.Equal(testutil.Date(2)))
}

func TestPlanTrip_SpendRollsForward(t *testing.T) {
	// Day one has nothing affordable, so its money is still there on day two.
	req := tripRequest(200, dates(1, 2),
		testutil.NewTestActivity("gala", testutil.WithCost(180), testutil.OnDates(testutil.Date(2))),
	)

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Days[0].IsEmpty())
	require.Len(t, res.Days[1].Assignments, 1)
	assert.Equal(t, "gala", res.Days[1].Assignments[0].Activity.ID)
}

func TestPlanTrip_ReservesBudgetForLaterMustSee(t *testing.T) {
	req := tripRequest(100, dates(1, 2),
		testutil.NewTestActivity("shopping", testutil.WithCost(60), testutil.WithPopularity(1)),
		testutil.NewTestActivity("opera", testutil.WithCost(70), testutil.MustSee(), testutil.OnDates(testutil.Date(2))),
	)

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, res.Days[0].IsEmpty(), "shopping would leave too little for the opera")
	require.Len(t, res.Days[1].Assignments, 1)
	assert.Equal(t, "opera", res.Days[1].Assignments[0].Activity.ID)
}

func TestPlanTrip_UnmetPreferenceWarnings(t *testing.T) {
	req := tripRequest(10, dates(1),
		testutil.NewTestActivity("tower", testutil.WithCost(90), testutil.MustSee()),
		testutil.NewTestActivity("cafe", testutil.WithCost(5), testutil.WithCategory(domain.CategoryDining)),
	)
	req.Preferences = domain.Preferences{Interests: []string{"dining", "jazz", "tower"}}

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)

	unmet := warningsWith(res.Warnings, domain.WarnUnmetPreference)
	require.Len(t, unmet, 3)
	assert.Equal(t, "tower", unmet[0].ActivityID)
	assert.Contains(t, unmet[0].Message, "only 10.00 left")
	assert.Contains(t, unmet[1].Message, `"jazz"`)
	assert.Contains(t, unmet[2].Message, `no "tower" activity could be scheduled`)
}

func TestPlanTrip_UnscheduledCandidateWarnings(t *testing.T) {
	req := tripRequest(100, dates(1, 2),
		testutil.NewTestActivity("brunch", testutil.WithWindow("10:00", "11:00"), testutil.WithPopularity(0.9)),
		testutil.NewTestActivity("gallery", testutil.WithWindow("10:00", "11:00"), testutil.OnDates(testutil.Date(1))),
		testutil.NewTestActivity("steakhouse", testutil.WithCategory(domain.CategoryDining)),
	)
	req.Preferences = domain.Preferences{AvoidCategories: []domain.Category{domain.CategoryDining}}

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)

	unmet := warningsWith(res.Warnings, domain.WarnUnmetPreference)
	require.Len(t, unmet, 1, "avoided categories are not reported")
	assert.Equal(t, "gallery", unmet[0].ActivityID)
	assert.Equal(t, "gallery could not be scheduled: gallery is not offered on 2026-05-02", unmet[0].Message)
}

func TestPlanTrip_RainyDayWithoutOutdoorWarning(t *testing.T) {
	req := tripRequest(100, dates(1, 2),
		testutil.NewTestActivity("museum"),
	)
	req.Weather[1] = testutil.NewTestWeather(testutil.Date(2), 0.8)
	req.Preferences = domain.Preferences{Interests: []string{"hiking"}}

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)

	rainy := warningsWith(res.Warnings, domain.WarnRainyDayNoOutdoor)
	require.Len(t, rainy, 1)
	assert.True(t, rainy[0].Date.Equal(testutil.Date(2)))
}

func TestPlanTrip_MissingWeatherUsesNeutral(t *testing.T) {
	req := tripRequest(100, dates(1), testutil.NewTestActivity("hike", testutil.Outdoor()))
	req.Weather = nil

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Days[0].Weather.Missing)
	assert.Equal(t, domain.NeutralSuitability, res.Days[0].Weather.OutdoorSuitability)
}

func TestPlanTrip_ProcessesDatesChronologically(t *testing.T) {
	req := tripRequest(100, []time.Time{testutil.Date(3), testutil.Date(1), testutil.Date(2), testutil.Date(1)},
		testutil.NewTestActivity("only"))

	res, err := PlanTrip(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Days, 3)
	assert.True(t, res.Days[0].Date.Equal(testutil.Date(1)))
	assert.Len(t, res.Days[0].Assignments, 1, "first chronological day gets the single activity")
}

func TestPlanTrip_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlanTrip(ctx, tripRequest(100, dates(1), testutil.NewTestActivity("a")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanTrip_InvalidConfig(t *testing.T) {
	req := tripRequest(100, dates(1))
	req.Config.SoftCap = 2
	_, err := PlanTrip(context.Background(), req)
	assert.Error(t, err)
}

func TestPlanTrip_MonotoneInBudget(t *testing.T) {
	build := func(budget float64) TripRequest {
		req := tripRequest(budget, dates(1),
			testutil.NewTestActivity("free", testutil.WithCost(0), testutil.WithWindow("08:00", "09:00")),
			testutil.NewTestActivity("cheap", testutil.WithCost(20), testutil.WithWindow("10:00", "11:00")),
			testutil.NewTestActivity("mid", testutil.WithCost(80), testutil.WithWindow("12:00", "13:00")),
		)
		req.Config.MaxActivities = 0
		return req
	}

	prev := -1.0
	var last *TripResult
	for _, budget := range []float64{0, 20, 100, 200} {
		res, err := PlanTrip(context.Background(), build(budget))
		require.NoError(t, err)
		score := totalScore(res.Days)
		assert.GreaterOrEqual(t, score, prev, "budget %.0f", budget)
		prev = score
		last = res
	}
	assert.Len(t, last.Days[0].Assignments, 3)
}

func TestPlanTrip_MonotoneInBudgetWithOverlappingWindows(t *testing.T) {
	build := func(budget float64) TripRequest {
		req := tripRequest(budget, dates(1, 2),
			testutil.NewTestActivity("big", testutil.WithCost(100), testutil.WithDuration(600),
				testutil.WithPopularity(1), testutil.WithWindow("08:00", "18:00")),
			testutil.NewTestActivity("a", testutil.WithCost(0), testutil.WithWindow("09:00", "10:00")),
			testutil.NewTestActivity("b", testutil.WithCost(0), testutil.WithWindow("12:00", "13:00")),
			testutil.NewTestActivity("c", testutil.WithCost(0), testutil.WithWindow("09:30", "11:00")),
		)
		req.Config.MaxActivities = 0
		return req
	}

	prev := -1.0
	for _, budget := range []float64{0, 50, 100, 150, 1000} {
		res, err := PlanTrip(context.Background(), build(budget))
		require.NoError(t, err)
		score := totalScore(res.Days)
		assert.GreaterOrEqual(t, score+1e-9, prev, "budget %.0f", budget)
		prev = score
	}
}

func TestNormalizeDates(t *testing.T) {
	out, warnings := NormalizeDates([]time.Time{
		testutil.Date(2).Add(5 * time.Hour),
		testutil.Date(1),
		testutil.Date(2),
	})
	assert.Equal(t, dates(1, 2), out)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnDuplicateTripDate, warnings[0].Code)
}

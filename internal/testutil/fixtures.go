package testutil

import (
	"time"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
)

// Date returns midnight UTC for a calendar day in May 2026. Fixtures use a
// fixed month so tests never depend on the clock.
func Date(day int) time.Time {
	return time.Date(2026, time.May, day, 0, 0, 0, 0, time.UTC)
}

type ActivityOption func(*domain.Activity)

func WithCost(c float64) ActivityOption {
	return func(a *domain.Activity) { a.Cost = decimal.NewFromFloat(c) }
}

func WithDuration(min int) ActivityOption {
	return func(a *domain.Activity) { a.DurationMin = min }
}

// WithWindow sets the earliest start and latest end ("HH:MM").
func WithWindow(start, end string) ActivityOption {
	return func(a *domain.Activity) {
		a.EarliestStart = domain.MustTimeOfDay(start)
		a.LatestEnd = domain.MustTimeOfDay(end)
	}
}

func WithCategory(c domain.Category) ActivityOption {
	return func(a *domain.Activity) {
		a.Category = c
		a.Outdoor = c.DefaultOutdoor()
	}
}

func Outdoor() ActivityOption {
	return func(a *domain.Activity) { a.Outdoor = true }
}

func WithPopularity(p float64) ActivityOption {
	return func(a *domain.Activity) { a.Popularity = p }
}

func WithTags(tags ...string) ActivityOption {
	return func(a *domain.Activity) { a.Tags = tags }
}

func Repeatable() ActivityOption {
	return func(a *domain.Activity) { a.Repeatable = true }
}

func MustSee() ActivityOption {
	return func(a *domain.Activity) { a.MustSee = true }
}

func OnDates(dates ...time.Time) ActivityOption {
	return func(a *domain.Activity) { a.AvailableOn = dates }
}

// NewTestActivity builds an indoor, all-day, 60-minute activity costing 10
// with popularity 0.5, then applies opts.
func NewTestActivity(id string, opts ...ActivityOption) domain.Activity {
	a := domain.Activity{
		ID:            id,
		Name:          id,
		Provider:      "test",
		Category:      domain.CategoryIndoor,
		Cost:          decimal.NewFromInt(10),
		DurationMin:   60,
		EarliestStart: domain.StartOfDay,
		LatestEnd:     domain.EndOfDay,
		Popularity:    0.5,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// NewTestWeather builds a forecast-backed profile with the given rain chance.
func NewTestWeather(date time.Time, precipitation float64) domain.DayWeather {
	outdoor := domain.Clamp(1-precipitation, 0.1, 1)
	return domain.DayWeather{
		Date:                     domain.DateOnly(date),
		PrecipitationProbability: precipitation,
		TemperatureBand:          domain.TempMild,
		OutdoorSuitability:       outdoor,
		IndoorSuitability:        1,
	}
}

package service

import (
	"slices"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/scheduler"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AssembleItinerary packages the planned days with every stage's warnings,
// in stage order, and computes summary statistics. It adds no constraints.
func AssembleItinerary(
	destination string,
	budget decimal.Decimal,
	trip *scheduler.TripResult,
	stageWarnings ...[]domain.Warning,
) *domain.Itinerary {
	days := slices.Clone(trip.Days)
	slices.SortStableFunc(days, func(a, b domain.DaySchedule) int { return a.Date.Compare(b.Date) })

	warnings := make([]domain.Warning, 0)
	for _, ws := range stageWarnings {
		warnings = append(warnings, ws...)
	}
	warnings = append(warnings, trip.Warnings...)

	return &domain.Itinerary{
		Destination: destination,
		Days:        days,
		Warnings:    warnings,
		Summary:     summarize(budget, days),
	}
}

func summarize(budget decimal.Decimal, days []domain.DaySchedule) domain.Summary {
	s := domain.Summary{
		Budget:            budget,
		TotalCost:         decimal.Zero,
		CategoriesCovered: []domain.Category{},
		CostByCategory:    make(map[domain.Category]decimal.Decimal),
		DailyCosts:        make([]domain.DayCost, 0, len(days)),
	}
	var categories []domain.Category
	for _, d := range days {
		if !d.IsEmpty() {
			s.DaysWithActivities++
		}
		day := domain.DayCost{Date: d.Date, Total: decimal.Zero, ByCategory: make(map[domain.Category]decimal.Decimal)}
		for _, a := range d.Assignments {
			s.TotalCost = s.TotalCost.Add(a.Cost)
			s.ActivityCount++
			s.TotalScore += a.Score
			categories = append(categories, a.Activity.Category)
			addCost(s.CostByCategory, a.Activity.Category, a.Cost)
			addCost(day.ByCategory, a.Activity.Category, a.Cost)
			day.Total = day.Total.Add(a.Cost)
		}
		s.DailyCosts = append(s.DailyCosts, day)
	}
	s.RemainingBudget = budget.Sub(s.TotalCost)
	if len(categories) > 0 {
		s.CategoriesCovered = lo.Uniq(categories)
		slices.Sort(s.CategoriesCovered)
	}
	return s
}

func addCost(m map[domain.Category]decimal.Decimal, c domain.Category, cost decimal.Decimal) {
	if prev, ok := m[c]; ok {
		m[c] = prev.Add(cost)
		return
	}
	m[c] = cost
}

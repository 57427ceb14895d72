package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/candidate"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/scheduler"
	"github.com/alexanderramin/wayfarer/internal/weather"
)

type plannerService struct {
	cfg      scheduler.DayConfig
	observer UseCaseObserver
}

func NewPlannerService(cfg scheduler.DayConfig, observers ...UseCaseObserver) PlannerService {
	return &plannerService{
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

// PlanItinerary is the single entry point of the planning core. Partial or
// malformed upstream data degrades the result with warnings; only requests
// that cannot be planned at all return a *app.PlanError.
func (s *plannerService) PlanItinerary(ctx context.Context, req app.PlanRequest) (it *domain.Itinerary, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"destination": req.Destination,
		"dates":       len(req.Dates),
	}
	defer func() {
		if it != nil {
			fields["activities"] = it.Summary.ActivityCount
			fields["warnings"] = len(it.Warnings)
			fields["total_cost"] = it.Summary.TotalCost.StringFixed(2)
		}
		observe(ctx, s.observer, "plan_itinerary", startedAt, fields, &err)
	}()

	if err := s.validate(req); err != nil {
		return nil, err
	}

	dates, dateWarnings := scheduler.NormalizeDates(req.Dates)
	profiles, weatherWarnings := weather.BuildProfiles(dates, req.Forecasts)

	pool, poolWarnings, err := candidate.NewPool(ctx, req.Activities)
	if err != nil {
		return nil, fmt.Errorf("building candidate pool: %w", err)
	}
	if pool.Len() == 0 {
		poolWarnings = append(poolWarnings, domain.Warning{
			Code:    domain.WarnEmptyCandidatePool,
			Message: "no usable activities after normalization",
		})
	}

	trip, err := scheduler.PlanTrip(ctx, scheduler.TripRequest{
		Dates:       dates,
		Pool:        pool,
		Weather:     profiles,
		TotalBudget: req.TotalBudget,
		Preferences: req.Preferences,
		Config:      s.cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("planning trip: %w", err)
	}

	return AssembleItinerary(req.Destination, req.TotalBudget, trip,
		req.Warnings, dateWarnings, weatherWarnings, poolWarnings), nil
}

func (s *plannerService) validate(req app.PlanRequest) error {
	if len(req.Dates) == 0 {
		return &app.PlanError{Code: app.ErrNoTripDates, Message: "trip has no dates"}
	}
	if req.TotalBudget.IsNegative() {
		return &app.PlanError{
			Code:    app.ErrNegativeBudget,
			Message: fmt.Sprintf("budget must be non-negative, got %s", req.TotalBudget),
		}
	}
	if err := s.cfg.Validate(); err != nil {
		return &app.PlanError{Code: app.ErrInvalidConfig, Message: err.Error()}
	}
	return nil
}

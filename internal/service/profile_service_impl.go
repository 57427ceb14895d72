package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/repository"
	"github.com/alexanderramin/wayfarer/internal/scheduler"
)

type profileService struct {
	profiles repository.ProfileRepo
	observer UseCaseObserver
}

func NewProfileService(profiles repository.ProfileRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{profiles: profiles, observer: useCaseObserverOrNoop(observers)}
}

func (s *profileService) Get(ctx context.Context) (*domain.PlannerProfile, error) {
	return s.profiles.Get(ctx)
}

// Save validates the profile as a day configuration before storing it.
func (s *profileService) Save(ctx context.Context, p *domain.PlannerProfile) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "save_profile", startedAt, nil, &err)
	}()

	if err := DayConfigFromProfile(p).Validate(); err != nil {
		return fmt.Errorf("invalid planner profile: %w", err)
	}
	p.UpdatedAt = time.Now().UTC()
	return s.profiles.Upsert(ctx, p)
}

// DayConfigFromProfile converts a saved profile into scheduler settings.
func DayConfigFromProfile(p *domain.PlannerProfile) scheduler.DayConfig {
	return scheduler.DayConfig{
		DayStart:      p.DayStart,
		DayEnd:        p.DayEnd,
		BufferMin:     p.BufferMin,
		MaxActivities: p.MaxPerDay,
		MaxDailySpend: p.MaxDailySpend,
		Weights: scheduler.Weights{
			PreferenceFit: p.WeightPreference,
			WeatherFit:    p.WeightWeather,
			BudgetFit:     p.WeightBudget,
			Popularity:    p.WeightPopularity,
		},
		SoftCap: p.SoftCap,
	}
}

// ProfileFromDayConfig is the inverse of DayConfigFromProfile.
func ProfileFromDayConfig(cfg scheduler.DayConfig, interests []string) *domain.PlannerProfile {
	return &domain.PlannerProfile{
		WeightPreference: cfg.Weights.PreferenceFit,
		WeightWeather:    cfg.Weights.WeatherFit,
		WeightBudget:     cfg.Weights.BudgetFit,
		WeightPopularity: cfg.Weights.Popularity,
		SoftCap:          cfg.SoftCap,
		BufferMin:        cfg.BufferMin,
		DayStart:         cfg.DayStart,
		DayEnd:           cfg.DayEnd,
		MaxPerDay:        cfg.MaxActivities,
		MaxDailySpend:    cfg.MaxDailySpend,
		Interests:        interests,
	}
}

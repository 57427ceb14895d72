package service

import (
	"context"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/repository"
)

type PlannerService interface {
	app.PlanItineraryUseCase
}

type HistoryService interface {
	Save(ctx context.Context, it *domain.Itinerary) (string, error)
	Get(ctx context.Context, id string) (*app.SavedItinerary, error)
	List(ctx context.Context, limit int) ([]repository.ItinerarySummary, error)
	Delete(ctx context.Context, id string) error
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.PlannerProfile, error)
	Save(ctx context.Context, p *domain.PlannerProfile) error
}

package app

import (
	"context"
	"time"

	"github.com/alexanderramin/wayfarer/internal/domain"
)

type PlanItineraryUseCase interface {
	PlanItinerary(ctx context.Context, req PlanRequest) (*domain.Itinerary, error)
}

type NarrateUseCase interface {
	Narrate(ctx context.Context, it *domain.Itinerary) (string, error)
}

// SavedItinerary is a persisted planning run.
type SavedItinerary struct {
	ID        string
	CreatedAt time.Time
	Itinerary *domain.Itinerary
}

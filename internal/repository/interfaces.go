package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
)

// ItinerarySummary is the list view of a saved itinerary.
type ItinerarySummary struct {
	ID            string
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	Budget        decimal.Decimal
	TotalCost     decimal.Decimal
	ActivityCount int
	WarningCount  int
	TotalScore    float64
	CreatedAt     time.Time
}

type ItineraryRepo interface {
	Create(ctx context.Context, id string, createdAt time.Time, it *domain.Itinerary) error
	GetByID(ctx context.Context, id string) (*ItinerarySummary, *domain.Itinerary, error)
	List(ctx context.Context, limit int) ([]ItinerarySummary, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.PlannerProfile, error)
	Upsert(ctx context.Context, p *domain.PlannerProfile) error
}

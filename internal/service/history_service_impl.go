package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/db"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/repository"
	"github.com/google/uuid"
)

type historyService struct {
	uow         db.UnitOfWork
	itineraries repository.ItineraryRepo
	now         func() time.Time
	observer    UseCaseObserver
}

func NewHistoryService(uow db.UnitOfWork, itineraries repository.ItineraryRepo, observers ...UseCaseObserver) HistoryService {
	return &historyService{
		uow:         uow,
		itineraries: itineraries,
		now:         func() time.Time { return time.Now().UTC() },
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Save persists an itinerary and its days in one transaction and returns
// the new ID.
func (s *historyService) Save(ctx context.Context, it *domain.Itinerary) (id string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"days": len(it.Days)}
	defer func() {
		fields["id"] = id
		observe(ctx, s.observer, "save_itinerary", startedAt, fields, &err)
	}()

	newID := uuid.NewString()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteItineraryRepo(tx).Create(ctx, newID, s.now(), it)
	})
	if err != nil {
		return "", fmt.Errorf("saving itinerary: %w", err)
	}
	return newID, nil
}

// Get loads a saved itinerary by full ID or by a unique ID prefix.
func (s *historyService) Get(ctx context.Context, id string) (*app.SavedItinerary, error) {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, it, err := s.itineraries.GetByID(ctx, fullID)
	if err != nil {
		return nil, err
	}
	return &app.SavedItinerary{ID: summary.ID, CreatedAt: summary.CreatedAt, Itinerary: it}, nil
}

func (s *historyService) List(ctx context.Context, limit int) ([]repository.ItinerarySummary, error) {
	return s.itineraries.List(ctx, limit)
}

func (s *historyService) Delete(ctx context.Context, id string) error {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return err
	}
	return s.itineraries.Delete(ctx, fullID)
}

func (s *historyService) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("itinerary id is required")
	}
	_, _, err := s.itineraries.GetByID(ctx, id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	all, err := s.itineraries.List(ctx, 0)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, sum := range all {
		if strings.HasPrefix(sum.ID, id) {
			matches = append(matches, sum.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("itinerary %s: %w", id, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("itinerary id prefix %q is ambiguous (%d matches)", id, len(matches))
}

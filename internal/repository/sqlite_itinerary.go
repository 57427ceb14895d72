package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wayfarer/internal/db"
	"github.com/alexanderramin/wayfarer/internal/domain"
)

// SQLiteItineraryRepo stores the full itinerary as a JSON payload plus
// summary columns and one row per day for listing.
type SQLiteItineraryRepo struct {
	db db.DBTX
}

func NewSQLiteItineraryRepo(conn db.DBTX) *SQLiteItineraryRepo {
	return &SQLiteItineraryRepo{db: conn}
}

const itinerarySummaryColumns = `id, destination, start_date, end_date, budget, total_cost,
	activity_count, warning_count, total_score, created_at`

// Create writes the itinerary and its days. Run it inside a unit of work so
// a failure on any day row leaves nothing behind.
func (r *SQLiteItineraryRepo) Create(ctx context.Context, id string, createdAt time.Time, it *domain.Itinerary) error {
	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("encoding itinerary: %w", err)
	}

	query := `INSERT INTO itineraries (` + itinerarySummaryColumns + `, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		id,
		it.Destination,
		it.StartDate().Format(domain.DateLayout),
		it.EndDate().Format(domain.DateLayout),
		it.Summary.Budget.String(),
		it.Summary.TotalCost.String(),
		it.Summary.ActivityCount,
		len(it.Warnings),
		it.Summary.TotalScore,
		formatTime(createdAt),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting itinerary: %w", err)
	}

	for _, d := range it.Days {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO itinerary_days (itinerary_id, date, activity_count, total_cost, outdoor_suitability)
			VALUES (?, ?, ?, ?, ?)`,
			id, d.Date.Format(domain.DateLayout), len(d.Assignments), d.TotalCost.String(), d.Weather.OutdoorSuitability,
		)
		if err != nil {
			return fmt.Errorf("inserting itinerary day %s: %w", d.Date.Format(domain.DateLayout), err)
		}
	}
	return nil
}

func (r *SQLiteItineraryRepo) GetByID(ctx context.Context, id string) (*ItinerarySummary, *domain.Itinerary, error) {
	query := `SELECT ` + itinerarySummaryColumns + `, payload FROM itineraries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var payload string
	summary, err := scanSummary(row, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("itinerary %s: %w", id, ErrNotFound)
		}
		return nil, nil, err
	}

	var it domain.Itinerary
	if err := json.Unmarshal([]byte(payload), &it); err != nil {
		return nil, nil, fmt.Errorf("decoding itinerary %s: %w", id, err)
	}
	return summary, &it, nil
}

// List returns saved itineraries, newest first. limit <= 0 means no limit.
func (r *SQLiteItineraryRepo) List(ctx context.Context, limit int) ([]ItinerarySummary, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + itinerarySummaryColumns + ` FROM itineraries
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing itineraries: %w", err)
	}
	defer rows.Close()

	var out []ItinerarySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SQLiteItineraryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM itineraries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting itinerary: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting itinerary: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("itinerary %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner, extra ...any) (*ItinerarySummary, error) {
	var (
		s            ItinerarySummary
		start, end   string
		budget, cost string
		createdAt    sql.NullString
	)
	dest := append([]any{
		&s.ID, &s.Destination, &start, &end, &budget, &cost,
		&s.ActivityCount, &s.WarningCount, &s.TotalScore, &createdAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning itinerary: %w", err)
	}

	var err error
	if s.StartDate, err = domain.ParseDate(start); err != nil {
		return nil, fmt.Errorf("itinerary %s start_date: %w", s.ID, err)
	}
	if s.EndDate, err = domain.ParseDate(end); err != nil {
		return nil, fmt.Errorf("itinerary %s end_date: %w", s.ID, err)
	}
	if s.Budget, err = decimalColumn(budget, "budget"); err != nil {
		return nil, err
	}
	if s.TotalCost, err = decimalColumn(cost, "total_cost"); err != nil {
		return nil, err
	}
	s.CreatedAt = parseStoredTime(createdAt)
	return &s, nil
}

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

// SQLitePlannerProfileRepo keeps the single planner_profile row.
type SQLitePlannerProfileRepo struct {
	db db.DBTX
}

func NewSQLitePlannerProfileRepo(conn db.DBTX) *SQLitePlannerProfileRepo {
	return &SQLitePlannerProfileRepo{db: conn}
}

func (r *SQLitePlannerProfileRepo) Get(ctx context.Context) (*domain.PlannerProfile, error) {
	query := `SELECT weight_preference, weight_weather, weight_budget, weight_popularity,
		soft_cap, buffer_min, day_start, day_end, max_per_day, max_daily_spend, interests, updated_at
		FROM planner_profile WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var (
		p                domain.PlannerProfile
		dayStart, dayEnd string
		spend, interests string
		updatedAt        sql.NullString
	)
	err := row.Scan(
		&p.WeightPreference,
		&p.WeightWeather,
		&p.WeightBudget,
		&p.WeightPopularity,
		&p.SoftCap,
		&p.BufferMin,
		&dayStart,
		&dayEnd,
		&p.MaxPerDay,
		&spend,
		&interests,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("planner profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning planner profile: %w", err)
	}

	if p.DayStart, err = domain.ParseTimeOfDay(dayStart); err != nil {
		return nil, fmt.Errorf("planner profile day_start: %w", err)
	}
	if p.DayEnd, err = domain.ParseTimeOfDay(dayEnd); err != nil {
		return nil, fmt.Errorf("planner profile day_end: %w", err)
	}
	if p.MaxDailySpend, err = decimalColumn(spend, "max_daily_spend"); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(interests), &p.Interests); err != nil {
		return nil, fmt.Errorf("planner profile interests: %w", err)
	}
	p.UpdatedAt = parseStoredTime(updatedAt)
	return &p, nil
}

func (r *SQLitePlannerProfileRepo) Upsert(ctx context.Context, p *domain.PlannerProfile) error {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	encoded, err := json.Marshal(interests)
	if err != nil {
		return fmt.Errorf("encoding interests: %w", err)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	query := `INSERT INTO planner_profile (id, weight_preference, weight_weather, weight_budget,
		weight_popularity, soft_cap, buffer_min, day_start, day_end, max_per_day, max_daily_spend,
		interests, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			weight_preference = excluded.weight_preference,
			weight_weather    = excluded.weight_weather,
			weight_budget     = excluded.weight_budget,
			weight_popularity = excluded.weight_popularity,
			soft_cap          = excluded.soft_cap,
			buffer_min        = excluded.buffer_min,
			day_start         = excluded.day_start,
			day_end           = excluded.day_end,
			max_per_day       = excluded.max_per_day,
			max_daily_spend   = excluded.max_daily_spend,
			interests         = excluded.interests,
			updated_at        = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.WeightPreference,
		p.WeightWeather,
		p.WeightBudget,
		p.WeightPopularity,
		p.SoftCap,
		p.BufferMin,
		p.DayStart.String(),
		p.DayEnd.String(),
		p.MaxPerDay,
		p.MaxDailySpend.String(),
		string(encoded),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting planner profile: %w", err)
	}
	return nil
}

// Package candidate normalizes raw provider activity records into the
// deduplicated pool the planner draws from.
package candidate

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Pool owns the normalized activities of one planning run.
type Pool struct {
	byID map[string]domain.Activity
}

type batchResult struct {
	activities []domain.Activity
	warnings   []domain.Warning
}

// NewPool normalizes every provider batch concurrently and merges the results
// in provider-name order. Malformed records are dropped with a warning; the
// only error is context cancellation.
func NewPool(ctx context.Context, batches map[string][]app.ActivityRecord) (*Pool, []domain.Warning, error) {
	providers := make([]string, 0, len(batches))
	for p := range batches {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	results := make([]batchResult, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range providers {
		g.Go(func() error {
			res, err := normalizeBatch(gctx, provider, batches[provider])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	pool := &Pool{byID: make(map[string]domain.Activity)}
	var warnings []domain.Warning
	for _, res := range results {
		warnings = append(warnings, res.warnings...)
		for _, a := range res.activities {
			if w, merged := pool.add(a); merged {
				warnings = append(warnings, w)
			}
		}
	}
	return pool, warnings, nil
}

// NewPoolFromActivities builds a pool from already-normalized activities.
func NewPoolFromActivities(activities ...domain.Activity) *Pool {
	pool := &Pool{byID: make(map[string]domain.Activity, len(activities))}
	for _, a := range activities {
		pool.add(a)
	}
	return pool
}

func normalizeBatch(ctx context.Context, provider string, records []app.ActivityRecord) (batchResult, error) {
	var res batchResult
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		a, err := Normalize(domain.CoalesceStr(rec.Provider, provider), rec)
		if err != nil {
			res.warnings = append(res.warnings, domain.Warning{
				Code:       domain.WarnRecordDropped,
				ActivityID: rec.ID,
				Message:    "dropped " + provider + " record: " + err.Error(),
			})
			continue
		}
		res.activities = append(res.activities, a)
	}
	return res, nil
}

func (p *Pool) add(a domain.Activity) (domain.Warning, bool) {
	existing, ok := p.byID[a.ID]
	if !ok {
		p.byID[a.ID] = a
		return domain.Warning{}, false
	}
	p.byID[a.ID] = merge(existing, a)
	return domain.Warning{
		Code:       domain.WarnDuplicateMerged,
		ActivityID: a.ID,
		Message:    "merged duplicate records for " + existing.Name,
	}, true
}

// merge keeps the first record's fields, the higher popularity and the union
// of tags and dates. A duplicate filed under another category contributes that
// category as a tag. An unrestricted record makes the merged one unrestricted.
func merge(first, dup domain.Activity) domain.Activity {
	out := first
	out.Popularity = max(first.Popularity, dup.Popularity)
	out.Tags = lo.Union(first.Tags, dup.Tags)
	if dup.Category != first.Category {
		out.Tags = lo.Union(out.Tags, []string{string(dup.Category)})
	}
	out.Repeatable = first.Repeatable || dup.Repeatable
	out.MustSee = first.MustSee || dup.MustSee
	if len(first.AvailableOn) == 0 || len(dup.AvailableOn) == 0 {
		out.AvailableOn = nil
	} else {
		out.AvailableOn = lo.Union(first.AvailableOn, dup.AvailableOn)
		sortDates(out.AvailableOn)
	}
	return out
}

// Activities returns the pool contents sorted by ID.
func (p *Pool) Activities() []domain.Activity {
	out := lo.Values(p.byID)
	slices.SortFunc(out, func(a, b domain.Activity) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

func (p *Pool) Get(id string) (domain.Activity, bool) {
	a, ok := p.byID[id]
	return a, ok
}

// Remove drops a consumed activity so later days cannot book it again.
func (p *Pool) Remove(id string) {
	delete(p.byID, id)
}

func (p *Pool) Len() int {
	return len(p.byID)
}

func sortDates(dates []time.Time) {
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
}

package candidate

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultPopularity is assigned to activities whose provider gives no rating.
const DefaultPopularity = 0.5

// activityNamespace seeds deterministic IDs for records that arrive without one.
var activityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://wayfarer.local/activity"))

// DeriveID returns a stable identifier for a provider record without an ID.
func DeriveID(provider, name string) string {
	key := strings.ToLower(strings.TrimSpace(provider)) + "|" + strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(activityNamespace, []byte(key)).String()
}

// Normalize converts one raw record into an Activity. A non-nil error means
// the record must be dropped; its message explains why.
func Normalize(provider string, rec app.ActivityRecord) (domain.Activity, error) {
	name := strings.TrimSpace(rec.Name)
	id := strings.TrimSpace(rec.ID)
	if id == "" && name == "" {
		return domain.Activity{}, fmt.Errorf("record has neither id nor name")
	}
	if id == "" {
		id = DeriveID(provider, name)
	}
	label := domain.CoalesceStr(name, id)

	if rec.Cost == nil {
		return domain.Activity{}, fmt.Errorf("%s: missing cost", label)
	}
	if *rec.Cost < 0 {
		return domain.Activity{}, fmt.Errorf("%s: negative cost %.2f", label, *rec.Cost)
	}
	if rec.DurationMin == nil {
		return domain.Activity{}, fmt.Errorf("%s: missing duration", label)
	}
	if *rec.DurationMin <= 0 {
		return domain.Activity{}, fmt.Errorf("%s: duration must be positive, got %d", label, *rec.DurationMin)
	}

	earliest, latest, err := parseWindow(rec.EarliestStart, rec.LatestEnd)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("%s: %w", label, err)
	}
	if int(latest-earliest) < *rec.DurationMin {
		return domain.Activity{}, fmt.Errorf("%s: window %s-%s shorter than %d min",
			label, earliest, latest, *rec.DurationMin)
	}

	category, known := domain.ParseCategory(rec.Category)
	tags := normalizeTags(rec.Tags)
	if !known && strings.TrimSpace(rec.Category) != "" {
		tags = lo.Union(tags, []string{strings.ToLower(strings.TrimSpace(rec.Category))})
	}

	outdoor := category.DefaultOutdoor()
	if rec.Indoor != nil {
		outdoor = !*rec.Indoor
	}

	dates := lo.Uniq(lo.Map(rec.Dates, func(d time.Time, _ int) time.Time { return domain.DateOnly(d) }))
	sortDates(dates)

	return domain.Activity{
		ID:            id,
		Name:          label,
		Provider:      provider,
		Venue:         strings.TrimSpace(rec.Venue),
		Category:      category,
		Tags:          tags,
		Cost:          decimal.NewFromFloat(*rec.Cost).Round(2),
		DurationMin:   *rec.DurationMin,
		EarliestStart: earliest,
		LatestEnd:     latest,
		Location:      domain.Location{Lat: rec.Lat, Lon: rec.Lon, Zone: strings.TrimSpace(rec.Zone)},
		Outdoor:       outdoor,
		Popularity:    domain.Clamp(domain.ValueOr(DefaultPopularity, rec.Rating), 0, 1),
		Repeatable:    rec.Repeatable,
		MustSee:       rec.MustSee,
		AvailableOn:   dates,
	}, nil
}

func parseWindow(start, end string) (domain.TimeOfDay, domain.TimeOfDay, error) {
	earliest, latest := domain.StartOfDay, domain.EndOfDay
	var err error
	if strings.TrimSpace(start) != "" {
		if earliest, err = domain.ParseTimeOfDay(start); err != nil {
			return 0, 0, fmt.Errorf("earliest start: %w", err)
		}
	}
	if strings.TrimSpace(end) != "" {
		if latest, err = domain.ParseTimeOfDay(end); err != nil {
			return 0, 0, fmt.Errorf("latest end: %w", err)
		}
	}
	if latest <= earliest {
		return 0, 0, fmt.Errorf("latest end %s is not after earliest start %s", latest, earliest)
	}
	return earliest, latest, nil
}

func normalizeTags(tags []string) []string {
	out := lo.FilterMap(tags, func(t string, _ int) (string, bool) {
		t = strings.ToLower(strings.TrimSpace(t))
		return t, t != ""
	})
	return lo.Uniq(out)
}

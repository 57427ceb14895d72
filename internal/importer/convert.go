package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	ProviderGeneric      = "generic"
	ProviderWeatherAPI   = "weatherapi"
	ProviderTicketmaster = "ticketmaster"

	// TicketmasterDurationMin is assumed for events, which carry no end time.
	TicketmasterDurationMin = 120
)

// Convert turns a validated RequestSchema into a planning request. Call
// ValidateRequestSchema first. Entries that cannot be decoded are skipped
// and reported as MALFORMED_RECORD warnings on the request.
func Convert(schema *RequestSchema) (app.PlanRequest, error) {
	dates, err := tripDates(schema.Trip)
	if err != nil {
		return app.PlanRequest{}, err
	}

	req := app.PlanRequest{
		Destination: strings.TrimSpace(schema.Trip.Destination),
		Dates:       dates,
		TotalBudget: lo.FromPtrOr(schema.Budget, decimal.Zero),
		Preferences: domain.Preferences{
			Interests: schema.Preferences.Interests,
			MustVisit: schema.Preferences.MustVisit,
			AvoidCategories: lo.FilterMap(schema.Preferences.AvoidCategories, func(c string, _ int) (domain.Category, bool) {
				return domain.ParseCategory(c)
			}),
			MealPreferences: lo.Compact(lo.Map(schema.Preferences.MealPreferences, func(m string, _ int) string {
				return strings.ToLower(strings.TrimSpace(m))
			})),
		},
		Activities: make(map[string][]app.ActivityRecord),
	}

	for i, raw := range schema.Forecasts {
		rec, err := convertForecast(raw)
		if err != nil {
			req.Warnings = append(req.Warnings, malformed("forecasts", i, err))
			continue
		}
		req.Forecasts = append(req.Forecasts, rec)
	}

	for i, raw := range schema.Activities {
		provider, rec, err := convertActivity(raw)
		if err != nil {
			req.Warnings = append(req.Warnings, malformed("activities", i, err))
			continue
		}
		rec.Provider = provider
		req.Activities[provider] = append(req.Activities[provider], rec)
	}
	return req, nil
}

func malformed(section string, i int, err error) domain.Warning {
	return domain.Warning{
		Code:    domain.WarnMalformedInputRecord,
		Message: fmt.Sprintf("%s[%d]: %v", section, i, err),
	}
}

func tripDates(t TripImport) ([]time.Time, error) {
	if len(t.Dates) > 0 {
		dates := make([]time.Time, 0, len(t.Dates))
		for _, s := range t.Dates {
			d, err := domain.ParseDate(s)
			if err != nil {
				return nil, err
			}
			dates = append(dates, d)
		}
		return dates, nil
	}

	start, err := domain.ParseDate(t.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	end, err := domain.ParseDate(t.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

func providerOf(raw json.RawMessage) (string, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("not a JSON object: %w", err)
	}
	p := strings.ToLower(strings.TrimSpace(env.Provider))
	if p == "" {
		return ProviderGeneric, nil
	}
	return p, nil
}

func convertForecast(raw json.RawMessage) (app.ForecastRecord, error) {
	provider, err := providerOf(raw)
	if err != nil {
		return app.ForecastRecord{}, err
	}

	switch provider {
	case ProviderWeatherAPI:
		var f WeatherAPIForecast
		if err := json.Unmarshal(raw, &f); err != nil {
			return app.ForecastRecord{}, fmt.Errorf("weatherapi forecast: %w", err)
		}
		date, err := domain.ParseDate(f.Date)
		if err != nil {
			return app.ForecastRecord{}, err
		}
		var p *float64
		if f.Day.DailyChanceOfRain != nil {
			p = lo.ToPtr(*f.Day.DailyChanceOfRain / 100)
		}
		return app.ForecastRecord{
			Date:                     date,
			PrecipitationProbability: p,
			TemperatureC:             f.Day.AvgTempC,
			Humidity:                 f.Day.AvgHumidity,
			Condition:                f.Day.Condition.Text,
		}, nil

	case ProviderGeneric:
		var f GenericForecast
		if err := json.Unmarshal(raw, &f); err != nil {
			return app.ForecastRecord{}, fmt.Errorf("generic forecast: %w", err)
		}
		date, err := domain.ParseDate(f.Date)
		if err != nil {
			return app.ForecastRecord{}, err
		}
		return app.ForecastRecord{
			Date:                     date,
			PrecipitationProbability: f.PrecipitationProbability,
			TemperatureC:             f.TemperatureC,
			Humidity:                 f.Humidity,
			Condition:                f.Condition,
		}, nil
	}
	return app.ForecastRecord{}, fmt.Errorf("unknown forecast provider %q", provider)
}

func convertActivity(raw json.RawMessage) (string, app.ActivityRecord, error) {
	provider, err := providerOf(raw)
	if err != nil {
		return "", app.ActivityRecord{}, err
	}

	switch provider {
	case ProviderTicketmaster:
		var ev TicketmasterEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return "", app.ActivityRecord{}, fmt.Errorf("ticketmaster event: %w", err)
		}
		rec, err := fromTicketmaster(ev)
		return provider, rec, err

	case ProviderGeneric:
		var a GenericActivity
		if err := json.Unmarshal(raw, &a); err != nil {
			return "", app.ActivityRecord{}, fmt.Errorf("generic activity: %w", err)
		}
		rec, err := fromGeneric(a)
		return provider, rec, err
	}
	return "", app.ActivityRecord{}, fmt.Errorf("unknown activity provider %q", provider)
}

func fromGeneric(a GenericActivity) (app.ActivityRecord, error) {
	dates, err := parseDates(a.Dates)
	if err != nil {
		return app.ActivityRecord{}, err
	}
	rec := app.ActivityRecord{
		ID:            a.ID,
		Name:          a.Name,
		Category:      a.Category,
		Tags:          a.Tags,
		Venue:         a.Venue,
		Cost:          a.Cost,
		DurationMin:   a.DurationMin,
		EarliestStart: a.EarliestStart,
		LatestEnd:     a.LatestEnd,
		Indoor:        a.Indoor,
		Rating:        a.Rating,
		Repeatable:    a.Repeatable,
		MustSee:       a.MustSee,
		Dates:         dates,
	}
	if a.Location != nil {
		rec.Lat, rec.Lon, rec.Zone = a.Location.Lat, a.Location.Lon, a.Location.Zone
	}
	return rec, nil
}

// fromTicketmaster maps a Discovery API event onto a record fixed to its
// start date and time. Events without a price range keep a nil cost and are
// dropped later by normalization.
func fromTicketmaster(ev TicketmasterEvent) (app.ActivityRecord, error) {
	date, err := domain.ParseDate(ev.Dates.Start.LocalDate)
	if err != nil {
		return app.ActivityRecord{}, fmt.Errorf("event %s: %w", domain.CoalesceStr(ev.Name, ev.ID), err)
	}

	rec := app.ActivityRecord{
		ID:          ev.ID,
		Name:        ev.Name,
		Category:    string(domain.CategoryEntertainment),
		DurationMin: lo.ToPtr(TicketmasterDurationMin),
		Dates:       []time.Time{date},
	}

	if ev.Dates.Start.LocalTime != "" {
		start, err := domain.ParseTimeOfDay(ev.Dates.Start.LocalTime)
		if err != nil {
			return app.ActivityRecord{}, fmt.Errorf("event %s: %w", domain.CoalesceStr(ev.Name, ev.ID), err)
		}
		end := min(start+TicketmasterDurationMin, domain.EndOfDay)
		rec.EarliestStart = start.String()
		rec.LatestEnd = end.String()
		if end-start < TicketmasterDurationMin {
			rec.DurationMin = lo.ToPtr(int(end - start))
		}
	}

	if len(ev.PriceRanges) > 0 && ev.PriceRanges[0].Min != nil {
		rec.Cost = ev.PriceRanges[0].Min
	}

	for _, c := range ev.Classifications {
		rec.Tags = append(rec.Tags, c.Segment.Name, c.Genre.Name)
	}
	rec.Tags = lo.Compact(rec.Tags)

	if len(ev.Embedded.Venues) > 0 {
		v := ev.Embedded.Venues[0]
		rec.Venue = v.Name
		rec.Zone = v.City.Name
		rec.Lat = parseCoord(v.Location.Latitude)
		rec.Lon = parseCoord(v.Location.Longitude)
	}
	return rec, nil
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Load reads, validates and converts a request file in one step.
func Load(path string) (app.PlanRequest, error) {
	schema, err := LoadRequestSchema(path)
	if err != nil {
		return app.PlanRequest{}, err
	}
	if errs := ValidateRequestSchema(schema); len(errs) > 0 {
		return app.PlanRequest{}, &ValidationError{Errors: errs}
	}
	return Convert(schema)
}

// ValidationError collects every structural problem found in a request file.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := lo.Map(e.Errors, func(err error, _ int) string { return "  - " + err.Error() })
	return fmt.Sprintf("request file has %d error(s):\n%s", len(e.Errors), strings.Join(msgs, "\n"))
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

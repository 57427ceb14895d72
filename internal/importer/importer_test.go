package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(day int) string {
	return fmt.Sprintf("2026-05-%02d", day)
}

func TestLoad_LisbonRequest(t *testing.T) {
	req, err := Load(filepath.Join("testdata", "lisbon.json"))
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", req.Destination)
	require.Len(t, req.Dates, 3)
	assert.Equal(t, date(1), req.Dates[0].Format(domain.DateLayout))
	assert.Equal(t, date(3), req.Dates[2].Format(domain.DateLayout))
	assert.True(t, req.TotalBudget.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, []domain.Category{domain.CategoryDining}, req.Preferences.AvoidCategories)
	assert.Equal(t, []string{"Belem Tower"}, req.Preferences.MustVisit)
	assert.Equal(t, []string{"seafood"}, req.Preferences.MealPreferences)

	require.Len(t, req.Forecasts, 2)
	rainy := req.Forecasts[0]
	require.NotNil(t, rainy.PrecipitationProbability)
	assert.InDelta(t, 0.8, *rainy.PrecipitationProbability, 1e-9)
	assert.Equal(t, "Patchy rain possible", rainy.Condition)
	assert.InDelta(t, 19.5, *rainy.TemperatureC, 1e-9)
	assert.InDelta(t, 0.1, *req.Forecasts[1].PrecipitationProbability, 1e-9)

	require.Len(t, req.Activities["generic"], 2)
	gulbenkian := req.Activities["generic"][0]
	assert.Equal(t, "generic", gulbenkian.Provider)
	assert.Equal(t, "Avenidas Novas", gulbenkian.Zone)
	assert.Equal(t, 150, *gulbenkian.DurationMin)
	assert.True(t, req.Activities["generic"][1].MustSee)

	require.Len(t, req.Activities["ticketmaster"], 1)
	fado := req.Activities["ticketmaster"][0]
	assert.Equal(t, "entertainment", fado.Category)
	assert.Equal(t, "21:00", fado.EarliestStart)
	assert.Equal(t, "23:00", fado.LatestEnd)
	assert.Equal(t, TicketmasterDurationMin, *fado.DurationMin)
	assert.InDelta(t, 35.5, *fado.Cost, 1e-9)
	assert.Equal(t, []string{"Music", "Folk"}, fado.Tags)
	assert.Equal(t, "Clube de Fado", fado.Venue)
	assert.InDelta(t, 38.711, *fado.Lat, 1e-9)
	require.Len(t, fado.Dates, 1)
	assert.Equal(t, date(2), fado.Dates[0].Format(domain.DateLayout))

	require.Len(t, req.Warnings, 3)
	for _, w := range req.Warnings {
		assert.Equal(t, domain.WarnMalformedInputRecord, w.Code)
	}
	assert.Contains(t, req.Warnings[0].Message, `forecasts[2]: unknown forecast provider "meteo"`)
	assert.Contains(t, req.Warnings[1].Message, "activities[3]")
	assert.Contains(t, req.Warnings[2].Message, "activities[4]: not a JSON object")
}

func TestConvert_ExplicitDatesAndDefaultProvider(t *testing.T) {
	schema, err := ParseRequestSchema([]byte(`{
		"trip": {"dates": ["2026-05-04", "2026-05-02"]},
		"budget": "80.50",
		"forecasts": [{"date": "2026-05-02", "precipitation_probability": 0.3}],
		"activities": [{"name": "Park", "cost": 0, "duration_minutes": 45, "dates": ["2026-05-04"]}]
	}`))
	require.NoError(t, err)
	require.Empty(t, ValidateRequestSchema(schema))

	req, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, req.Dates, 2)
	assert.Equal(t, date(4), req.Dates[0].Format(domain.DateLayout), "order is left to the planner")
	assert.Equal(t, "80.5", req.TotalBudget.String())
	require.Len(t, req.Forecasts, 1)
	require.Len(t, req.Activities[ProviderGeneric], 1)
	assert.Empty(t, req.Warnings)
}

func TestTicketmaster_LateEventClippedToMidnight(t *testing.T) {
	var ev TicketmasterEvent
	ev.ID = "late"
	ev.Dates.Start.LocalDate = "2026-05-01"
	ev.Dates.Start.LocalTime = "23:00:00"

	rec, err := fromTicketmaster(ev)
	require.NoError(t, err)
	assert.Equal(t, "24:00", rec.LatestEnd)
	assert.Equal(t, 60, *rec.DurationMin)
	assert.Nil(t, rec.Cost, "no price range leaves cost unknown")
}

func TestValidateRequestSchema_CollectsAllErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "empty",
			json: `{}`,
			want: []string{"trip.start_date is required", "trip.end_date is required", "budget is required"},
		},
		{
			name: "reversed range",
			json: `{"trip": {"start_date": "2026-05-03", "end_date": "2026-05-01"}, "budget": 1}`,
			want: []string{"is before start_date"},
		},
		{
			name: "bad dates",
			json: `{"trip": {"start_date": "05/01/2026", "end_date": "2026-13-01"}, "budget": 1}`,
			want: []string{"trip.start_date", "trip.end_date"},
		},
		{
			name: "both forms",
			json: `{"trip": {"dates": ["2026-05-01", "x"], "start_date": "2026-05-01"}, "budget": 1}`,
			want: []string{"not both", "trip.dates[1]"},
		},
		{
			name: "unknown avoided category",
			json: `{"trip": {"dates": ["2026-05-01"]}, "budget": 1, "preferences": {"avoid_categories": ["museums"]}}`,
			want: []string{`unknown category "museums"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := ParseRequestSchema([]byte(tt.json))
			require.NoError(t, err)
			errs := ValidateRequestSchema(schema)
			require.Len(t, errs, len(tt.want))
			for i, w := range tt.want {
				assert.Contains(t, errs[i].Error(), w)
			}
		})
	}
}

func TestLoad_ValidationErrorListsEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"trip": {}}`), 0o600))

	_, err := Load(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 3)
	assert.Contains(t, err.Error(), "3 error(s)")
}

func TestLoad_Unparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"trip": `), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing request file")
}

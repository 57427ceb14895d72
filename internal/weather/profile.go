// Package weather turns provider-neutral forecast records into per-day
// suitability profiles.
package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
)

const (
	// OutdoorFloor keeps outdoor activities selectable on fully rainy days.
	OutdoorFloor = 0.1
	// RainyThreshold is the precipitation probability at which a day counts as wet.
	RainyThreshold = 0.6
)

// BuildProfiles derives one DayWeather per trip date, in the order given.
// Dates without a usable forecast get neutral suitability and a warning.
func BuildProfiles(dates []time.Time, records []app.ForecastRecord) ([]domain.DayWeather, []domain.Warning) {
	var warnings []domain.Warning

	byDate := make(map[time.Time]app.ForecastRecord, len(records))
	for _, r := range records {
		day := domain.DateOnly(r.Date)
		if _, dup := byDate[day]; dup {
			warnings = append(warnings, domain.NewDayWarning(domain.WarnInvalidForecast, day,
				"duplicate forecast for %s ignored", day.Format(domain.DateLayout)))
			continue
		}
		byDate[day] = r
	}

	profiles := make([]domain.DayWeather, 0, len(dates))
	for _, d := range dates {
		day := domain.DateOnly(d)
		rec, ok := byDate[day]
		if !ok || rec.PrecipitationProbability == nil {
			warnings = append(warnings, domain.NewDayWarning(domain.WarnMissingForecast, day,
				"no forecast for %s, using neutral weather", day.Format(domain.DateLayout)))
			profiles = append(profiles, neutralFrom(day, rec, ok))
			continue
		}
		profile, warn := Profile(day, rec)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		profiles = append(profiles, profile)
	}
	return profiles, warnings
}

// Profile builds the DayWeather for a single record. It returns a warning when
// the precipitation probability had to be clamped into [0,1].
func Profile(day time.Time, rec app.ForecastRecord) (domain.DayWeather, *domain.Warning) {
	var warn *domain.Warning
	p := *rec.PrecipitationProbability
	if p < 0 || p > 1 {
		w := domain.NewDayWarning(domain.WarnInvalidForecast, day,
			"precipitation probability %.2f for %s out of range, clamped", p, day.Format(domain.DateLayout))
		warn = &w
		p = domain.Clamp(p, 0, 1)
	}

	profile := domain.DayWeather{
		Date:                     domain.DateOnly(day),
		PrecipitationProbability: p,
		TemperatureC:             rec.TemperatureC,
		TemperatureBand:          Band(rec.TemperatureC),
		Humidity:                 rec.Humidity,
		Condition:                strings.TrimSpace(rec.Condition),
		OutdoorSuitability:       domain.Clamp(1-p, OutdoorFloor, 1),
		IndoorSuitability:        1,
	}
	profile.Advice = Advice(profile.Condition, p)
	return profile, warn
}

func neutralFrom(day time.Time, rec app.ForecastRecord, found bool) domain.DayWeather {
	w := domain.NeutralWeather(day)
	if !found {
		return w
	}
	// Keep whatever descriptive fields the partial record carried.
	w.TemperatureC = rec.TemperatureC
	w.TemperatureBand = Band(rec.TemperatureC)
	w.Humidity = rec.Humidity
	w.Condition = strings.TrimSpace(rec.Condition)
	return w
}

// Band buckets a temperature in Celsius.
func Band(tempC *float64) domain.TemperatureBand {
	if tempC == nil {
		return domain.TempUnknown
	}
	switch t := *tempC; {
	case t < 10:
		return domain.TempCold
	case t < 20:
		return domain.TempMild
	case t < 28:
		return domain.TempWarm
	default:
		return domain.TempHot
	}
}

// Advice returns short packing and planning hints for the day.
func Advice(condition string, precipitation float64) []string {
	c := strings.ToLower(condition)
	var out []string
	switch {
	case strings.Contains(c, "snow"):
		out = append(out, "Dress warmly and allow extra time between stops")
	case strings.Contains(c, "rain") || strings.Contains(c, "drizzle") || strings.Contains(c, "shower"):
		out = append(out, "Bring an umbrella and favor indoor venues")
	case strings.Contains(c, "sunny"):
		out = append(out, "Good day for outdoor sightseeing; bring sunscreen")
	case strings.Contains(c, "cloud") || strings.Contains(c, "overcast"):
		out = append(out, "Mild conditions suit walking tours")
	case strings.Contains(c, "clear"):
		out = append(out, "Clear skies, consider an evening outdoor activity")
	}
	if precipitation >= RainyThreshold && !strings.Contains(c, "rain") {
		out = append(out, fmt.Sprintf("%.0f%% chance of rain, keep an indoor backup", precipitation*100))
	}
	return out
}

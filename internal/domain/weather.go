package domain

import "time"

// NeutralSuitability is used for every activity class on a day without a
// usable forecast.
const NeutralSuitability = 0.5

// DayWeather is the per-date weather signal derived once per planning run.
type DayWeather struct {
	Date                     time.Time       `json:"date"`
	PrecipitationProbability float64         `json:"precipitation_probability"`
	TemperatureC             *float64        `json:"temperature_c,omitempty"`
	TemperatureBand          TemperatureBand `json:"temperature_band"`
	Humidity                 *float64        `json:"humidity,omitempty"`
	Condition                string          `json:"condition,omitempty"`
	OutdoorSuitability       float64         `json:"outdoor_suitability"`
	IndoorSuitability        float64         `json:"indoor_suitability"`
	Advice                   []string        `json:"advice,omitempty"`
	Missing                  bool            `json:"missing,omitempty"`
}

// Suitability returns the suitability for the given activity class.
func (w DayWeather) Suitability(outdoor bool) float64 {
	if outdoor {
		return w.OutdoorSuitability
	}
	return w.IndoorSuitability
}

// Rainy reports whether precipitation is likely enough to treat the day as wet.
func (w DayWeather) Rainy() bool {
	return !w.Missing && w.PrecipitationProbability >= 0.6
}

// NeutralWeather is the substitute profile for a date with no forecast.
func NeutralWeather(date time.Time) DayWeather {
	return DayWeather{
		Date:               DateOnly(date),
		TemperatureBand:    TempUnknown,
		OutdoorSuitability: NeutralSuitability,
		IndoorSuitability:  NeutralSuitability,
		Missing:            true,
	}
}

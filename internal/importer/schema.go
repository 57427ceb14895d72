// Package importer reads a JSON trip request file and converts it into a
// planning request. Forecast and activity entries are tagged by provider.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// RequestSchema is the top-level JSON structure of a trip request file.
type RequestSchema struct {
	Trip        TripImport        `json:"trip"`
	Budget      *decimal.Decimal  `json:"budget"`
	Preferences PreferencesImport `json:"preferences"`
	// Entries stay raw until conversion so one bad entry never fails the file.
	Forecasts  []json.RawMessage `json:"forecasts,omitempty"`
	Activities []json.RawMessage `json:"activities,omitempty"`
}

// TripImport names the destination and either an inclusive date range or an
// explicit list of dates.
type TripImport struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Dates       []string `json:"dates,omitempty"`
}

type PreferencesImport struct {
	Interests       []string `json:"interests,omitempty"`
	MustVisit       []string `json:"must_visit,omitempty"`
	AvoidCategories []string `json:"avoid_categories,omitempty"`
	MealPreferences []string `json:"meal_preferences,omitempty"`
}

type envelope struct {
	Provider string `json:"provider"`
}

// WeatherAPIForecast is one weatherapi.com forecastday entry.
type WeatherAPIForecast struct {
	Date string `json:"date"`
	Day  struct {
		AvgTempC          *float64 `json:"avgtemp_c"`
		AvgHumidity       *float64 `json:"avghumidity"`
		DailyChanceOfRain *float64 `json:"daily_chance_of_rain"` // percent
		Condition         struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"day"`
}

type GenericForecast struct {
	Date                     string   `json:"date"`
	PrecipitationProbability *float64 `json:"precipitation_probability"` // 0..1
	TemperatureC             *float64 `json:"temperature_c"`
	Humidity                 *float64 `json:"humidity"`
	Condition                string   `json:"condition"`
}

// TicketmasterEvent is the subset of a Discovery API event the planner uses.
type TicketmasterEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	PriceRanges []struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"priceRanges"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
		Genre struct {
			Name string `json:"name"`
		} `json:"genre"`
	} `json:"classifications"`
	Embedded struct {
		Venues []struct {
			Name     string `json:"name"`
			Location struct {
				Latitude  string `json:"latitude"`
				Longitude string `json:"longitude"`
			} `json:"location"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
		} `json:"venues"`
	} `json:"_embedded"`
}

type LocationImport struct {
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
	Zone string   `json:"zone,omitempty"`
}

type GenericActivity struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Tags          []string        `json:"tags"`
	Venue         string          `json:"venue"`
	Cost          *float64        `json:"cost"`
	DurationMin   *int            `json:"duration_minutes"`
	EarliestStart string          `json:"earliest_start"`
	LatestEnd     string          `json:"latest_end"`
	Location      *LocationImport `json:"location"`
	Indoor        *bool           `json:"indoor"`
	Rating        *float64        `json:"rating"` // 0..1
	Repeatable    bool            `json:"repeatable"`
	MustSee       bool            `json:"must_see"`
	Dates         []string        `json:"dates"`
}

// LoadRequestSchema reads and parses a trip request file.
func LoadRequestSchema(path string) (*RequestSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRequestSchema(data)
}

func ParseRequestSchema(data []byte) (*RequestSchema, error) {
	var schema RequestSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	return &schema, nil
}

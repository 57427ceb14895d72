package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Location is either a coordinate, a zone identifier, or both.
type Location struct {
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
	Zone string   `json:"zone,omitempty"`
}

// Activity is a normalized bookable event or attraction. Values are created
// once per planning run by the candidate pool and never mutated afterwards.
type Activity struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Provider      string          `json:"provider,omitempty"`
	Venue         string          `json:"venue,omitempty"`
	Category      Category        `json:"category"`
	Tags          []string        `json:"tags,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	DurationMin   int             `json:"duration_min"`
	EarliestStart TimeOfDay       `json:"earliest_start"`
	LatestEnd     TimeOfDay       `json:"latest_end"`
	Location      Location        `json:"location"`
	Outdoor       bool            `json:"outdoor"`
	Popularity    float64         `json:"popularity"`
	Repeatable    bool            `json:"repeatable,omitempty"`
	MustSee       bool            `json:"must_see,omitempty"`
	// AvailableOn restricts the activity to specific dates. Empty means any day.
	AvailableOn []time.Time `json:"available_on,omitempty"`
}

func (a Activity) IsFree() bool {
	return a.Cost.Sign() == 0
}

// AvailableOnDate reports whether the activity may be scheduled on date.
func (a Activity) AvailableOnDate(date time.Time) bool {
	if len(a.AvailableOn) == 0 {
		return true
	}
	day := DateOnly(date)
	for _, d := range a.AvailableOn {
		if DateOnly(d).Equal(day) {
			return true
		}
	}
	return false
}

// OnlyAfter reports whether every date the activity is restricted to falls
// strictly after date.
func (a Activity) OnlyAfter(date time.Time) bool {
	if len(a.AvailableOn) == 0 {
		return false
	}
	day := DateOnly(date)
	for _, d := range a.AvailableOn {
		if !DateOnly(d).After(day) {
			return false
		}
	}
	return true
}

// HasTag matches tag case-insensitively against the activity's tags.
func (a Activity) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range a.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// Preferences are the user-declared constraints that are not budget or dates.
type Preferences struct {
	Interests       []string   `json:"interests,omitempty"`
	MustVisit       []string   `json:"must_visit,omitempty"`
	AvoidCategories []Category `json:"avoid_categories,omitempty"`
	// MealPreferences are cuisines or diets ("vegetarian", "seafood") matched
	// against dining activities only.
	MealPreferences []string `json:"meal_preferences,omitempty"`
}

// IsMustSee reports whether the activity is flagged must-see by its provider
// or named in the user's must-visit list.
func (p Preferences) IsMustSee(a Activity) bool {
	if a.MustSee {
		return true
	}
	name := strings.ToLower(a.Name)
	for _, place := range p.MustVisit {
		place = strings.ToLower(strings.TrimSpace(place))
		if place != "" && strings.Contains(name, place) {
			return true
		}
	}
	return false
}

// Matches reports whether the activity's category, tags, or name match any
// declared interest.
func (p Preferences) Matches(a Activity) bool {
	name := strings.ToLower(a.Name)
	for _, interest := range p.Interests {
		i := strings.ToLower(strings.TrimSpace(interest))
		if i == "" {
			continue
		}
		if string(a.Category) == i || a.HasTag(i) || strings.Contains(name, i) {
			return true
		}
	}
	return false
}

// MatchesMeal reports whether a dining activity's tags or name match a meal
// preference. Other categories never match.
func (p Preferences) MatchesMeal(a Activity) bool {
	if a.Category != CategoryDining {
		return false
	}
	name := strings.ToLower(a.Name)
	for _, meal := range p.MealPreferences {
		m := strings.ToLower(strings.TrimSpace(meal))
		if m != "" && (a.HasTag(m) || strings.Contains(name, m)) {
			return true
		}
	}
	return false
}

func (p Preferences) Avoids(c Category) bool {
	for _, avoid := range p.AvoidCategories {
		if avoid == c {
			return true
		}
	}
	return false
}

// WantsOutdoor reports whether any declared interest names outdoor activity.
func (p Preferences) WantsOutdoor() bool {
	for _, interest := range p.Interests {
		i := strings.ToLower(strings.TrimSpace(interest))
		if i == string(CategoryOutdoor) || i == "hiking" || i == "nature" || i == "parks" {
			return true
		}
	}
	return false
}

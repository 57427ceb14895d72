// Package calendar exports itineraries as RFC 5545 calendars.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/domain"
	ics "github.com/arran4/golang-ical"
)

const productID = "-//wayfarer//itinerary//EN"

type Options struct {
	// Name is the calendar display name. Defaults to the destination.
	Name string
	// Location anchors wall-clock times. Nil means UTC.
	Location *time.Location
	// Stamp is written as DTSTAMP on every event. Zero means now.
	Stamp time.Time
}

// Build creates one VEVENT per assignment. Event UIDs depend only on the
// date and activity, so re-exporting the same plan updates rather than
// duplicates entries in calendar clients.
func Build(it *domain.Itinerary, opts Options) *ics.Calendar {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	name := domain.CoalesceStr(opts.Name, it.Destination, "Trip")
	cal.SetXWRCalName(name)

	for _, day := range it.Days {
		for _, a := range day.Assignments {
			ev := cal.AddEvent(eventUID(day.Date, a.Activity.ID))
			ev.SetDtStampTime(stamp)
			ev.SetStartAt(a.Start.On(day.Date, opts.Location))
			ev.SetEndAt(a.End.On(day.Date, opts.Location))
			ev.SetSummary(a.Activity.Name)
			if loc := location(a.Activity); loc != "" {
				ev.SetLocation(loc)
			}
			ev.SetDescription(description(a, day.Weather))
			ev.AddProperty(ics.ComponentPropertyCategories, string(a.Activity.Category))
		}
	}
	return cal
}

// Write serializes the itinerary calendar to w.
func Write(w io.Writer, it *domain.Itinerary, opts Options) error {
	if err := Build(it, opts).SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func eventUID(date time.Time, activityID string) string {
	return fmt.Sprintf("%s-%s@wayfarer", date.Format("20060102"), activityID)
}

func location(a domain.Activity) string {
	parts := make([]string, 0, 2)
	if a.Venue != "" {
		parts = append(parts, a.Venue)
	}
	if a.Location.Zone != "" {
		parts = append(parts, a.Location.Zone)
	}
	return strings.Join(parts, ", ")
}

func description(a domain.Assignment, w domain.DayWeather) string {
	var b strings.Builder
	if a.Cost.IsZero() {
		b.WriteString("Free")
	} else {
		fmt.Fprintf(&b, "Cost: %s", a.Cost.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nScore: %.2f", a.Score)
	for _, advice := range w.Advice {
		b.WriteString("\n")
		b.WriteString(advice)
	}
	return b.String()
}

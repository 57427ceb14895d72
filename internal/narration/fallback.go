package narration

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/samber/lo"
)

// Deterministic builds a narrative straight from the itinerary. It is used
// whenever the LLM is disabled or its answer cannot be trusted.
func Deterministic(it *domain.Itinerary) string {
	var b strings.Builder

	s := it.Summary
	dest := ""
	if it.Destination != "" {
		dest = " to " + it.Destination
	}
	fmt.Fprintf(&b, "Your %d-day trip%s includes %d %s for %s",
		len(it.Days), dest, s.ActivityCount, plural(s.ActivityCount, "activity", "activities"), s.TotalCost.StringFixed(2))
	if s.Budget.IsPositive() {
		fmt.Fprintf(&b, " of a %s budget", s.Budget.StringFixed(2))
	}
	b.WriteString(".\n")

	for _, day := range it.Days {
		b.WriteString("\n")
		b.WriteString(dayText(day))
	}

	if n := len(it.Warnings); n > 0 {
		fmt.Fprintf(&b, "\n\n%d planning %s; see the warnings for details.", n, plural(n, "note", "notes"))
	}
	return b.String()
}

func dayText(day domain.DaySchedule) string {
	label := day.Date.Format("Mon 2 Jan")
	if day.IsEmpty() {
		return label + ": free day, nothing planned."
	}
	stops := lo.Map(day.Assignments, func(a domain.Assignment, _ int) string {
		return fmt.Sprintf("%s at %s", a.Activity.Name, a.Start)
	})
	text := fmt.Sprintf("%s: %s.", label, strings.Join(stops, ", then "))
	if len(day.Weather.Advice) > 0 {
		text += " " + strings.Join(day.Weather.Advice, " ")
	}
	return text
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FormatItinerary renders the full plan: summary, one block per day and the
// warnings list.
func FormatItinerary(it *domain.Itinerary) string {
	var b strings.Builder

	title := "Itinerary"
	if it.Destination != "" {
		title += " · " + it.Destination
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(summaryLine(it))
	b.WriteString("\n")
	if line := categorySpendLine(it.Summary.CostByCategory); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, day := range it.Days {
		b.WriteString("\n")
		b.WriteString(formatDay(day))
	}

	if len(it.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(it.Warnings))
	}
	return b.String()
}

func summaryLine(it *domain.Itinerary) string {
	s := it.Summary
	parts := []string{
		fmt.Sprintf("%d days", len(it.Days)),
		fmt.Sprintf("%d activities", s.ActivityCount),
		fmt.Sprintf("spent %s of %s", s.TotalCost.StringFixed(2), s.Budget.StringFixed(2)),
	}
	remaining := StyleGreen
	if s.RemainingBudget.IsZero() && s.Budget.IsPositive() {
		remaining = StyleYellow
	}
	parts = append(parts, remaining.Render("left "+s.RemainingBudget.StringFixed(2)))
	if len(s.CategoriesCovered) > 0 {
		cats := make([]string, len(s.CategoriesCovered))
		for i, c := range s.CategoriesCovered {
			cats[i] = string(c)
		}
		parts = append(parts, Dim(strings.Join(cats, ", ")))
	}
	return strings.Join(parts, Dim(" · "))
}

// categorySpendLine lists paid categories, most expensive first.
func categorySpendLine(costs map[domain.Category]decimal.Decimal) string {
	cats := lo.Filter(lo.Keys(costs), func(c domain.Category, _ int) bool { return costs[c].IsPositive() })
	if len(cats) == 0 {
		return ""
	}
	slices.SortFunc(cats, func(a, b domain.Category) int {
		if c := costs[b].Cmp(costs[a]); c != 0 {
			return c
		}
		return strings.Compare(string(a), string(b))
	})
	parts := lo.Map(cats, func(c domain.Category, _ int) string {
		return fmt.Sprintf("%s %s", c, costs[c].StringFixed(2))
	})
	return Dim("by category: ") + strings.Join(parts, Dim(" · "))
}

func formatDay(day domain.DaySchedule) string {
	var b strings.Builder
	b.WriteString(Bold(DayLabel(day.Date)))
	b.WriteString("  ")
	b.WriteString(weatherLine(day.Weather))
	b.WriteString("\n")
	for _, advice := range day.Weather.Advice {
		b.WriteString("  ")
		b.WriteString(Dim(advice))
		b.WriteString("\n")
	}

	if day.IsEmpty() {
		b.WriteString("  ")
		b.WriteString(Dim("nothing scheduled"))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(day.Assignments))
	for _, a := range day.Assignments {
		name := a.Activity.Name
		if a.Activity.MustSee {
			name += StyleYellow.Render(" ★")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s–%s", a.Start, a.End),
			name,
			CategoryBadge(a.Activity.Category),
			Money(a.Cost),
			fmt.Sprintf("%.2f", a.Score),
		})
	}
	table := RenderTable([]string{"TIME", "ACTIVITY", "CATEGORY", "COST", "SCORE"}, rows)
	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %s\n", Dim("day total "+day.TotalCost.StringFixed(2)))
	return b.String()
}

func weatherLine(w domain.DayWeather) string {
	if w.Missing {
		return Dim("no forecast")
	}
	parts := []string{fmt.Sprintf("rain %.0f%%", w.PrecipitationProbability*100)}
	if w.TemperatureC != nil {
		parts = append(parts, fmt.Sprintf("%.0f°C", *w.TemperatureC))
	}
	if w.Condition != "" {
		parts = append(parts, w.Condition)
	}
	parts = append(parts, SuitabilityStyle(w.OutdoorSuitability).Render(fmt.Sprintf("outdoor %.2f", w.OutdoorSuitability)))
	return strings.Join(parts, Dim(" · "))
}

// FormatWarnings renders one line per warning, colored by severity.
func FormatWarnings(ws []domain.Warning) string {
	var b strings.Builder
	b.WriteString(Header("Warnings"))
	b.WriteString("\n")
	for _, w := range ws {
		fmt.Fprintf(&b, "%s %s\n", WarningStyle(w.Code).Render("• "+string(w.Code)), w.Message)
	}
	return b.String()
}

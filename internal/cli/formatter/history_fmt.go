package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/repository"
	"github.com/alexanderramin/wayfarer/internal/scheduler"
)

func FormatHistoryList(items []repository.ItinerarySummary) string {
	if len(items) == 0 {
		return Dim("No saved itineraries.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			StyleBlue.Render(TruncID(it.ID)),
			it.Destination,
			DateRange(it.StartDate, it.EndDate),
			fmt.Sprintf("%d", it.ActivityCount),
			fmt.Sprintf("%s / %s", it.TotalCost.StringFixed(2), it.Budget.StringFixed(2)),
			fmt.Sprintf("%d", it.WarningCount),
			Dim(HumanTimestamp(it.CreatedAt)),
		})
	}
	return RenderTable([]string{"ID", "DESTINATION", "DATES", "ACTIVITIES", "COST", "WARNINGS", "SAVED"}, rows)
}

// FormatPlannerSettings renders the effective scheduling settings and where
// they came from.
func FormatPlannerSettings(cfg scheduler.DayConfig, interests []string, source string) string {
	maxPerDay := "no limit"
	if cfg.MaxActivities > 0 {
		maxPerDay = fmt.Sprintf("%d", cfg.MaxActivities)
	}
	dailySpend := "no limit"
	if cfg.MaxDailySpend.IsPositive() {
		dailySpend = cfg.MaxDailySpend.StringFixed(2)
	}
	lines := []string{
		fmt.Sprintf("%-18s %s–%s", "Day window", cfg.DayStart, cfg.DayEnd),
		fmt.Sprintf("%-18s %d min", "Buffer", cfg.BufferMin),
		fmt.Sprintf("%-18s %s", "Max per day", maxPerDay),
		fmt.Sprintf("%-18s %s", "Max daily spend", dailySpend),
		fmt.Sprintf("%-18s %.2f", "Soft cap", cfg.SoftCap),
		fmt.Sprintf("%-18s preference %.2f · weather %.2f · budget %.2f · popularity %.2f", "Weights",
			cfg.Weights.PreferenceFit, cfg.Weights.WeatherFit, cfg.Weights.BudgetFit, cfg.Weights.Popularity),
	}
	if len(interests) > 0 {
		lines = append(lines, fmt.Sprintf("%-18s %s", "Default interests", strings.Join(interests, ", ")))
	}
	lines = append(lines, "", Dim("source: "+source))
	return RenderBox("Planner profile", strings.Join(lines, "\n"))
}

package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}

// Money renders an amount with two decimals, or "free" for zero.
func Money(d decimal.Decimal) string {
	if d.IsZero() {
		return "free"
	}
	return d.StringFixed(2)
}

// DayLabel renders a trip date like "Fri 1 May 2026".
func DayLabel(t time.Time) string {
	return t.Format("Mon 2 Jan 2006")
}

// DateRange renders "2026-05-01 → 2026-05-03", or one date when equal.
func DateRange(start, end time.Time) string {
	if start.IsZero() {
		return "-"
	}
	s := start.Format(domain.DateLayout)
	if end.Equal(start) {
		return s
	}
	return s + " → " + end.Format(domain.DateLayout)
}

// TruncID shortens a UUID for display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// HumanTimestamp renders a timestamp in local time without seconds.
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

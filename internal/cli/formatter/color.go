package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SuitabilityStyle colors an outdoor suitability value: green when the
// weather favours being outside, red when it does not.
func SuitabilityStyle(s float64) lipgloss.Style {
	switch {
	case s >= 0.7:
		return StyleGreen
	case s >= 0.4:
		return StyleYellow
	default:
		return StyleRed
	}
}

// CategoryBadge renders a category as a short colored tag.
func CategoryBadge(c domain.Category) string {
	style := StyleDim
	switch c {
	case domain.CategoryOutdoor, domain.CategorySightseeing:
		style = StyleGreen
	case domain.CategoryDining:
		style = StyleYellow
	case domain.CategoryEntertainment:
		style = StylePurple
	case domain.CategoryIndoor:
		style = StyleBlue
	}
	return style.Render("[" + string(c) + "]")
}

// WarningStyle picks a color per warning severity. Data-quality warnings are
// dim; warnings about the plan itself stand out.
func WarningStyle(code domain.WarningCode) lipgloss.Style {
	switch code {
	case domain.WarnBudgetExhausted, domain.WarnUnmetPreference, domain.WarnEmptyCandidatePool:
		return StyleRed
	case domain.WarnNoActivitiesForDay, domain.WarnRainyDayNoOutdoor:
		return StyleYellow
	default:
		return StyleDim
	}
}

// Header renders an uppercase section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(strings.Repeat("─", len(upper))))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

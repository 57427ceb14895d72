package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/cli/formatter"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func wayfarerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// preferenceAnswers holds the raw values edited by the interactive form.
type preferenceAnswers struct {
	Budget    string
	Interests string
	MustVisit string
	Meals     string
	Avoid     []string
}

func answersFromRequest(req app.PlanRequest) preferenceAnswers {
	return preferenceAnswers{
		Budget:    req.TotalBudget.StringFixed(2),
		Interests: strings.Join(req.Preferences.Interests, ", "),
		MustVisit: strings.Join(req.Preferences.MustVisit, ", "),
		Meals:     strings.Join(req.Preferences.MealPreferences, ", "),
		Avoid: lo.Map(req.Preferences.AvoidCategories, func(c domain.Category, _ int) string {
			return string(c)
		}),
	}
}

// apply writes the answers back into the request, replacing its budget and
// preferences.
func (a preferenceAnswers) apply(req *app.PlanRequest) error {
	if err := validateBudget(a.Budget); err != nil {
		return err
	}
	budget, _ := decimal.NewFromString(strings.TrimSpace(a.Budget))
	req.TotalBudget = budget
	req.Preferences.Interests = splitList(a.Interests)
	req.Preferences.MustVisit = splitList(a.MustVisit)
	req.Preferences.MealPreferences = lo.Map(splitList(a.Meals), func(m string, _ int) string { return strings.ToLower(m) })
	req.Preferences.AvoidCategories = lo.FilterMap(a.Avoid, func(s string, _ int) (domain.Category, bool) {
		return domain.ParseCategory(s)
	})
	return nil
}

func preferenceForm(a *preferenceAnswers) *huh.Form {
	categories := lo.Keys(domain.ValidCategories)
	slices.Sort(categories)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Budget").
				Placeholder("e.g. 250").
				Value(&a.Budget).
				Validate(validateBudget),
			huh.NewInput().
				Title("Interests").
				Description("Comma-separated tags, e.g. art, food, music").
				Value(&a.Interests),
			huh.NewInput().
				Title("Must visit").
				Description("Comma-separated place names").
				Value(&a.MustVisit),
			huh.NewInput().
				Title("Meal preferences").
				Description("Comma-separated cuisines or diets, e.g. seafood, vegetarian").
				Value(&a.Meals),
			huh.NewMultiSelect[string]().
				Title("Avoid categories").
				Options(huh.NewOptions(categories...)...).
				Value(&a.Avoid),
		),
	).WithTheme(wayfarerHuhTheme()).WithShowHelp(false)
}

func validateBudget(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter an amount")
	}
	if d.IsNegative() {
		return fmt.Errorf("budget cannot be negative")
	}
	return nil
}

func splitList(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Uniq(lo.Compact(parts))
}

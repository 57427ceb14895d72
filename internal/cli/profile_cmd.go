package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/wayfarer/internal/cli/formatter"
	"github.com/alexanderramin/wayfarer/internal/config"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/repository"
	"github.com/alexanderramin/wayfarer/internal/service"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the saved planner profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
	)

	return cmd
}

// currentProfile returns the saved profile, or one built from the config
// when nothing has been saved yet. The string names the source.
func currentProfile(ctx context.Context, app *App) (*domain.PlannerProfile, string, error) {
	p, err := app.Profiles.Get(ctx)
	if err == nil {
		return p, "saved profile", nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	cfg := app.Config
	if cfg == nil {
		cfg = config.Default()
	}
	dc, err := cfg.DayConfig()
	if err != nil {
		return nil, "", err
	}
	return service.ProfileFromDayConfig(dc, nil), "config defaults", nil
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective planner settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, source, err := currentProfile(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlannerSettings(service.DayConfigFromProfile(p), p.Interests, source))
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		dayStart, dayEnd  string
		buffer, maxPerDay int
		softCap           float64
		wPref, wWeather   float64
		wBudget, wPop     float64
		dailySpend        moneyValue
		interests         []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change planner settings; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := currentProfile(cmd.Context(), app)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("day-start") {
				if p.DayStart, err = domain.ParseTimeOfDay(dayStart); err != nil {
					return fmt.Errorf("--day-start: %w", err)
				}
			}
			if flags.Changed("day-end") {
				if p.DayEnd, err = domain.ParseTimeOfDay(dayEnd); err != nil {
					return fmt.Errorf("--day-end: %w", err)
				}
			}
			if flags.Changed("buffer") {
				p.BufferMin = buffer
			}
			if flags.Changed("max-per-day") {
				p.MaxPerDay = maxPerDay
			}
			if flags.Changed("max-daily-spend") {
				p.MaxDailySpend = dailySpend.amount
			}
			if flags.Changed("soft-cap") {
				p.SoftCap = softCap
			}
			if flags.Changed("weight-preference") {
				p.WeightPreference = wPref
			}
			if flags.Changed("weight-weather") {
				p.WeightWeather = wWeather
			}
			if flags.Changed("weight-budget") {
				p.WeightBudget = wBudget
			}
			if flags.Changed("weight-popularity") {
				p.WeightPopularity = wPop
			}
			if flags.Changed("interest") {
				p.Interests = splitList(strings.Join(interests, ","))
			}

			if err := app.Profiles.Save(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlannerSettings(service.DayConfigFromProfile(p), p.Interests, "saved profile"))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Changes apply to the next plan run."))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dayStart, "day-start", "", "Earliest start of the day (HH:MM)")
	f.StringVar(&dayEnd, "day-end", "", "Latest end of the day (HH:MM)")
	f.IntVar(&buffer, "buffer", 0, "Minutes kept free between activities")
	f.IntVar(&maxPerDay, "max-per-day", 0, "Maximum activities per day (0 for no limit)")
	f.Var(&dailySpend, "max-daily-spend", "Maximum spend per day (0 for no limit)")
	f.Float64Var(&softCap, "soft-cap", 0, "Share of the remaining budget one activity may use without penalty")
	f.Float64Var(&wPref, "weight-preference", 0, "Scoring weight for interest match")
	f.Float64Var(&wWeather, "weight-weather", 0, "Scoring weight for weather fit")
	f.Float64Var(&wBudget, "weight-budget", 0, "Scoring weight for budget fit")
	f.Float64Var(&wPop, "weight-popularity", 0, "Scoring weight for popularity")
	f.StringSliceVar(&interests, "interest", nil, "Default interest tags; pass an empty value to clear")

	return cmd
}

package cli

import (
	"log/slog"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/config"
	"github.com/alexanderramin/wayfarer/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all services used by CLI commands.
type App struct {
	Planner  service.PlannerService
	History  service.HistoryService
	Profiles service.ProfileService
	Narrator app.NarrateUseCase

	// Config is the effective configuration after any saved profile was
	// applied.
	Config *config.Config
	Logger *slog.Logger

	// DefaultInterests come from the saved planner profile and are merged
	// into every request.
	DefaultInterests []string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "wayfarer" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "wayfarer",
		Short:         "Weather- and budget-aware trip itinerary planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newHistoryCmd(app),
		newProfileCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

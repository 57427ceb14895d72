package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/wayfarer/internal/calendar"
	"github.com/alexanderramin/wayfarer/internal/cli/formatter"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/importer"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// outputOptions are shared by `plan` and `history show`.
type outputOptions struct {
	asJSON  bool
	icsPath string
	narrate bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the itinerary as JSON")
	cmd.Flags().StringVar(&o.icsPath, "ics", "", "Also export the itinerary as an iCalendar file")
	cmd.Flags().BoolVar(&o.narrate, "narrate", false, "Append a prose summary of the trip")
}

func newPlanCmd(app *App) *cobra.Command {
	var (
		out         outputOptions
		budget      moneyValue
		interests   []string
		save        bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "plan <request.json>",
		Short: "Plan an itinerary from a trip request file",
		Long: `Plan an itinerary from a trip request file.

The request lists the trip dates, budget, preferences and raw forecast and
activity records from any supported provider. Malformed records become
warnings rather than failing the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := importer.Load(args[0])
			if err != nil {
				return err
			}

			if budget.set {
				req.TotalBudget = budget.amount
			}
			req.Preferences.Interests = lo.Union(app.DefaultInterests, req.Preferences.Interests, interests)

			if interactive {
				if !app.interactive() {
					return errors.New("--interactive needs a terminal")
				}
				answers := answersFromRequest(req)
				if err := preferenceForm(&answers).Run(); err != nil {
					return fmt.Errorf("reading preferences: %w", err)
				}
				if err := answers.apply(&req); err != nil {
					return err
				}
			}

			it, err := app.Planner.PlanItinerary(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := writeItinerary(cmd, app, it, out); err != nil {
				return err
			}

			if save {
				id, err := app.History.Save(cmd.Context(), it)
				if err != nil {
					return fmt.Errorf("saving itinerary: %w", err)
				}
				notice(cmd, out, "Saved itinerary %s\n", formatter.TruncID(id))
			}
			return nil
		},
	}

	out.register(cmd)
	cmd.Flags().Var(&budget, "budget", "Override the request budget")
	cmd.Flags().StringSliceVar(&interests, "interest", nil, "Add an interest tag (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the itinerary in history")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit budget and preferences in a form before planning")

	return cmd
}

// writeItinerary prints the plan (text or JSON), then the optional narrative
// and calendar export.
func writeItinerary(cmd *cobra.Command, app *App, it *domain.Itinerary, out outputOptions) error {
	w := cmd.OutOrStdout()

	var narrative string
	if out.narrate {
		if app.Narrator == nil {
			return errors.New("narration is not configured")
		}
		var err error
		if narrative, err = app.Narrator.Narrate(cmd.Context(), it); err != nil {
			return fmt.Errorf("narrating itinerary: %w", err)
		}
	}

	if out.asJSON {
		if err := writeJSON(w, it, narrative); err != nil {
			return err
		}
	} else {
		fmt.Fprint(w, formatter.FormatItinerary(it))
		if narrative != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatter.RenderBox("Trip story", narrative))
		}
	}

	if out.icsPath != "" {
		if err := exportCalendar(out.icsPath, it); err != nil {
			return err
		}
		app.logger().Info("calendar exported", "path", out.icsPath, "events", it.Summary.ActivityCount)
		notice(cmd, out, "Wrote calendar to %s\n", out.icsPath)
	}
	return nil
}

type jsonOutput struct {
	*domain.Itinerary
	Narrative string `json:"narrative,omitempty"`
}

func writeJSON(w io.Writer, it *domain.Itinerary, narrative string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonOutput{Itinerary: it, Narrative: narrative}); err != nil {
		return fmt.Errorf("encoding itinerary: %w", err)
	}
	return nil
}

func exportCalendar(path string, it *domain.Itinerary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	if err := calendar.Write(f, it, calendar.Options{}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// notice prints a status line, on stderr when stdout carries JSON.
func notice(cmd *cobra.Command, out outputOptions, format string, args ...any) {
	w := cmd.OutOrStdout()
	if out.asJSON {
		w = cmd.ErrOrStderr()
	}
	fmt.Fprintf(w, format, args...)
}

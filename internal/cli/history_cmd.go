package cli

import (
	"fmt"

	"github.com/alexanderramin/wayfarer/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "Browse saved itineraries",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryDeleteCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved itineraries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be non-negative, got %d", limit)
			}
			items, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistoryList(items))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of itineraries to show (0 for all)")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved itinerary (full ID or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.asJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n\n",
					formatter.StyleBlue.Render(formatter.TruncID(saved.ID)),
					formatter.Dim("saved "+formatter.HumanTimestamp(saved.CreatedAt)))
			}
			return writeItinerary(cmd, app, saved.Itinerary, out)
		},
	}

	out.register(cmd)
	return cmd
}

func newHistoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved itinerary",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.History.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted itinerary %s\n", args[0])
			return nil
		},
	}
}

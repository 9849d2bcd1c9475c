package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cards10e/laquiniela247/internal/storage"
)

func newPurgeGamesCmd() *cobra.Command {
	var minWeek int
	var since string

	cmd := &cobra.Command{
		Use:   "purge-games",
		Short: "Delete games matching criteria, with their bets",
		Long: `Deletes every game matching the given criteria together with the
bets placed on it. The matched set is printed before deletion so the run
can be audited from the logs. At least one criterion is required; an
empty selection is refused rather than purging everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var criteria storage.GameCriteria
			if cmd.Flags().Changed("min-week") {
				criteria.MinWeekNumber = &minWeek
			}
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("--since must be a YYYY-MM-DD date: %q", since)
				}
				criteria.CreatedSince = &t
			}

			app, closeApp, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			result, err := app.MaintenanceEngine.PurgeGamesByCriteria(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&minWeek, "min-week", 0, "Match games with week number >= N")
	cmd.Flags().StringVar(&since, "since", "", "Match games created on or after this date (YYYY-MM-DD)")

	return cmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPurgeWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-week <weekNumber>",
		Short: "Delete a week with its games and bets",
		Long: `Deletes the week with the given number, all games in it, and all
bets on those games. Deletion is bottom-up so no bet ever outlives its
game. A missing week is reported as nothing-to-do and exits zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("week number must be an integer: %q", args[0])
			}

			app, closeApp, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			result, err := app.MaintenanceEngine.PurgeWeek(cmd.Context(), weekNumber)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

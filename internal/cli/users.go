package cli

import (
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Print the user directory report",
		Long:  "Lists all users (id, display name, email, role, creation date), newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeApp, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			entries, err := app.AccountService.Directory(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(entries)
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email> <newPassword>",
		Short: "Reset a user's password",
		Long: `Overwrites the stored credential hash for the user with the given
email. The prior password is not required. The bcrypt work factor can be
overridden with BCRYPT_COST.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, newPassword := args[0], args[1]

			// Argument validation happens before any storage access
			if email == "" || newPassword == "" {
				return fmt.Errorf("email and new password must not be empty")
			}

			app, closeApp, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			if err := app.AccountService.ResetPassword(cmd.Context(), email, newPassword); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Password updated for %s", email))
			return nil
		},
	}
}

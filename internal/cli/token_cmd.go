package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/brandvoice/internal/auth"
)

func newTokenCmd(app *App) *cobra.Command {
	var (
		userID string
		admin  bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Issuer == nil {
				return errors.New("token signing is not configured: set BRANDVOICE_JWT_SECRET")
			}
			role := auth.RoleUser
			if admin {
				role = auth.RoleAdmin
			}
			tok, err := app.Issuer.Issue(userID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID to embed as the token subject (required)")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

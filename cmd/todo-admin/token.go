package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xgustaf/todo-admin/internal/auth"
	"github.com/xgustaf/todo-admin/internal/repository"
)

func newTokenCmd() *cobra.Command {
	var roles []string
	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Mint a signed access token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			users := repository.NewGormUserRepository(db.GetDB())
			user, err := users.FindByUsername(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("find user %q: %w", args[0], err)
			}

			token, err := auth.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer, users).
				Issue(user.ID, roles, cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleUser, auth.RoleAdmin}, "roles granted by the token")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xgustaf/todo-admin/internal/domain"
	"github.com/xgustaf/todo-admin/internal/repository"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var email, fullName string
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user",
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

			user := &domain.User{Username: args[0], Email: email, FullName: fullName}
			if err := repository.NewGormUserRepository(db.GetDB()).Create(cmd.Context(), user); err != nil {
				return fmt.Errorf("create user %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s with id %d\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
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

			log.Info("running database auto-migration")
			if err := db.Migrate(); err != nil {
				return err
			}
			log.Info("database auto-migration complete")
			return nil
		},
	}
}

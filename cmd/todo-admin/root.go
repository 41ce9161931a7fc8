package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xgustaf/todo-admin/internal/config"
	"github.com/xgustaf/todo-admin/internal/database"
	"github.com/xgustaf/todo-admin/internal/logger"
)

const serviceName = "todo-admin"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Todo administration backend",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newUserCmd(),
		newTokenCmd(),
	)
	return root
}

// bootstrap loads the configuration and builds the logger shared by every
// subcommand.
func bootstrap() (*config.Config, *logrus.Entry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(serviceName, cfg.LogLevel), nil
}

func openDatabase(cfg *config.Config, log *logrus.Entry) (database.Service, error) {
	return database.New(cfg.DB, log)
}

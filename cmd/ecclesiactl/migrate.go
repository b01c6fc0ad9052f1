package main

import (
	"fmt"

	"ecclesia-backend/internal/config"
	"ecclesia-backend/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tenants and profiles tables (DATA_STORE=postgres only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DataStore != config.DataStorePostgres {
				return codeError(exitUsage, "migrate needs DATA_STORE=%s; run the backend setup script against the hosted database instead", config.DataStorePostgres)
			}

			db, err := database.Initialize(cfg.DatabaseURL, nil)
			if err != nil {
				return codeError(exitUnavailable, "%s", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

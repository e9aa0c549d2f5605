package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/hotel-warehouse/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the remote mirror schema",
		Long:  `Runs the embedded migrations against DATABASE_URL (or DB_HOST/DB_*). Already applied migrations are skipped.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.DB.Enabled() {
				return errors.New("no remote database configured: set DATABASE_URL or DB_HOST")
			}
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			log.Info().Msg("mirror schema up to date")
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/hydra-janus/batch-service/internal/config"
	"github.com/hydra-janus/batch-service/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var migrateSteps int

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back PostgreSQL schema migrations",
		Long: `Manage the batches schema with the migrations embedded in the binary.

The SQLite store creates its table on startup and has nothing to migrate.`,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := migrationConfig()
			if err != nil {
				return err
			}
			if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := migrationConfig()
			if err != nil {
				return err
			}
			if err := postgres.MigrateDown(cfg.Database.URL, migrateSteps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", migrateSteps)
			return nil
		},
	}
	down.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")

	migrate.AddCommand(up, down)
	return migrate
}

func migrationConfig() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return config.Config{}, fmt.Errorf("migrations only apply to the %s driver, got %q", config.DriverPostgres, cfg.Database.Driver)
	}
	return cfg, nil
}

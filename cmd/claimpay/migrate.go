package main

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/claimpay/internal/config"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/persistence/postgres"
	"github.com/spf13/cobra"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|version]",
	Short: "Apply or inspect database schema migrations",
	Long: `Run the SQL migrations under database.migrations_path.

Examples:
  claimpay migrate up
  claimpay migrate down --steps 1
  claimpay migrate version`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back with down")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := cfg.Logger.NewLogger()

	db, err := postgres.Connect(context.Background(), &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	migrator := postgres.NewMigrator(db, cfg.Database.MigrationsPath, cfg.Database.Name, logger)

	switch args[0] {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down(migrateDownSteps)
	default:
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	}
}

package main

import (
	"fmt"

	"fifo/cmd"
	"fifo/internal/adapters/out/postgres/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

func runMigrate(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	logger := newLogger()

	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}

	db, err := migrations.Open(config.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err = migrations.Up(ctx, db); err != nil {
		return err
	}

	version, err := migrations.Version(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.InfoContext(ctx, "Database migrated", "version", version)
	return nil
}

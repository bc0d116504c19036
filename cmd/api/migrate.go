package main

import (
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/coach-crm/internal/db"
	"github.com/BruksfildServices01/coach-crm/internal/logging"
)

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(ctx, cfg)
	if err != nil {
		logging.LogError(ctx, slog.Default(), "database connection failed", err)
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := dbpkg.Migrate(ctx, db); err != nil {
		logging.LogError(ctx, slog.Default(), "migration failed", err)
		return oops.Code("migration_failed").Wrap(err)
	}

	slog.InfoContext(ctx, "migrations completed")
	return nil
}

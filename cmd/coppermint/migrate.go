package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finchley/coppermint/internal/cli"
	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/config"
	"github.com/finchley/coppermint/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required
tables and indexes for the application to function properly.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	common.LogInfo("Starting database migration", common.Fields{"database": dbPath})

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Database schema is at version %d", storage.ExpectedSchemaVersion)))
	return nil
}

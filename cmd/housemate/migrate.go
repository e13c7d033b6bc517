package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/housemate/internal/config"
	"github.com/mmynk/housemate/internal/storage/sqlite"
)

func newMigrateCommand() *cobra.Command {
	var dbPath string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version). The schema is embedded in the binary.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dbPath == "" {
				dbPath = config.Load().DBPath
			}
		},
	}
	migrateCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: DB_PATH)")

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sqlite.Migrate(dbPath); err != nil {
				return err
			}
			return printVersion(cmd, dbPath)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sqlite.MigrateDown(dbPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All migrations rolled back")
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd, dbPath)
		},
	})

	return migrateCmd
}

func printVersion(cmd *cobra.Command, dbPath string) error {
	version, dirty, err := sqlite.MigrationVersion(dbPath)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "Migration version: %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migration version: %d\n", version)
	return nil
}

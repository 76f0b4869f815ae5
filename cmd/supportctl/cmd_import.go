package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importFlags struct {
	dbPath string
}

var importCmd = &cobra.Command{
	Use:   "import <export-file>",
	Short: "Load a CSV or XLSX ticket export into the database",
	Long: `Import parses a ticket export and upserts its rows into the SQLite
database. Rows missing an identifier or creation timestamp are skipped
and counted; re-importing the same file is safe.

Usage:
  supportctl import exports/june.csv
  supportctl import exports/june.xlsx --db ./data/tickets.db`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFlags.dbPath, "db", "", "SQLite database path (default $DB_PATH or ./data/tickets.db)")
}

func runImport(cmd *cobra.Command, args []string) error {
	result, err := loadExport(args[0])
	if err != nil {
		return fmt.Errorf("load export: %w", err)
	}

	dbPath := resolveDBPath(importFlags.dbPath)
	db, repo, err := openRepository(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	inserted, err := repo.InsertTickets(ctx, result.Tickets)
	if err != nil {
		return fmt.Errorf("insert tickets: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tickets into %s (%d rows skipped)\n",
		inserted, dbPath, result.Skipped)
	return nil
}

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/ingest"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/repository"
	dbbuilder "github.com/catarina-mdias/twitter-customer-support-app-sub001/pkg/database"
)

// resolveDBPath falls back from the flag to DB_PATH (honoring .env) to the
// stock location, matching the server's database configuration.
func resolveDBPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("DB_PATH"); env != "" {
		return env
	}
	return "./data/tickets.db"
}

// loadExport reads a ticket export, dispatching on file extension.
func loadExport(path string) (*ingest.Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.LoadCSV(path)
	case ".xlsx":
		return ingest.LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported export format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// openRepository opens the SQLite database and wraps it in the ticket
// repository. The caller owns the returned pool.
func openRepository(dbPath string) (*sql.DB, *repository.TicketRepository, error) {
	db, err := dbbuilder.New(
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(dbPath),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	return db, repository.NewTicketRepository(db), nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(name, raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD or RFC 3339, got %q", name, raw)
}

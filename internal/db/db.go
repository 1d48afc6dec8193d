// ABOUTME: Database connection management for the vitals fact store.
// ABOUTME: Handles initialization, XDG paths, and SQLite pragmas.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// InitDB initializes the database connection and creates schema.
func InitDB(dbPath string) (*sql.DB, error) {
	// Create directory if needed
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open connection
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set pragmas
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	// Run schema
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	// Older databases predate the file_hash column
	if err := EnsureFileHashColumn(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// fmtTime renders a timestamp the way every table stores it: RFC 3339 in UTC.
// Uniform storage keeps string comparison, DATE(), and the uniqueness keys
// consistent regardless of the zone the source export used.
func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime is the inverse of fmtTime.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// fmtTimePtr renders an optional timestamp, keeping NULL for nil.
func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

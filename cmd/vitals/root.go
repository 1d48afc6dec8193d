// ABOUTME: Root Cobra command for vitals CLI.
// ABOUTME: Opens the store in PersistentPreRunE, closes it in PostRunE.
package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/config"
	"github.com/harperreed/vitals/internal/db"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	dbConn *sql.DB
)

var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Personal health data import pipeline",
	Long: `Vitals ingests periodically-exported health CSV files into a normalized
local store, safely re-runnable any number of times.

WHAT IT INGESTS:

  HealthMetrics-*.csv   wide metric exports (one column per metric)
  Workouts-*.csv        exercise sessions
  Medications-*.csv     dose events
  CycleTracking-*.csv   cycle tracking entries

Glucose exports are excluded from file ingestion; 'vitals glucose' pulls
them from the LibreLinkUp API instead.

QUICK START:

  $ vitals import --dir ~/HealthExports   # Ingest new and changed files
  $ vitals import --dry-run               # Preview without writing
  $ vitals validate                       # Data quality checks
  $ vitals report "Resting Heart Rate"    # Daily rollup

CHANGE DETECTION:

  Every file is fingerprinted (SHA-256). A file already in the import
  ledger with the same hash is skipped; a changed file is re-processed
  additively — existing rows are never touched, only missing rows added.
  Processed files move to an imported/ subdirectory after a clean run.

MCP INTEGRATION:

  Run 'vitals mcp' to serve read-only query tools over the Model Context
  Protocol for Claude Desktop or other MCP-compatible assistants.

DATA STORAGE:

  SQLite database at ~/.local/share/vitals/vitals.db (XDG aware).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dbConn, err = db.InitDB(cfg.GetDBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbConn != nil {
			return dbConn.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(glucoseCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(nutritionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mcpCmd)
}

// parseUserTime accepts the timestamp formats operators actually type.
func parseUserTime(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time: %q", s)
}

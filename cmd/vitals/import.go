// ABOUTME: CLI command running the batch import over the export directory.
// ABOUTME: Prints the run summary and exits non-zero on structural failures.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/ingest"
	"github.com/harperreed/vitals/internal/validate"
	"github.com/spf13/cobra"
)

var (
	importDir     string
	importDryRun  bool
	importVerbose bool
)

var importCmd = &cobra.Command{
	Use:     "import",
	Aliases: []string{"i"},
	Short:   "Ingest new and changed CSV exports",
	Long: `Scan the export directory for CSV files and ingest any that are new or
changed since the last run. Safe to run multiple times: unchanged files are
skipped by content hash, and re-imports only add rows that are missing.

After a clean run (no errors), processed files and auxiliary artifacts move
to an imported/ subdirectory so the export folder stays tidy. Any error
leaves everything in place for inspection and retry.

Data quality validation runs after every import attempt; its warnings never
fail the run.

EXAMPLES:

  vitals import --dir ~/HealthExports
  vitals import --dry-run
  vitals import -v                      # show validation info lines too`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := importDir
		if dir == "" {
			dir = cfg.GetImportDir()
		}
		if dir == "" {
			return fmt.Errorf("no import directory: pass --dir or set import_dir in config")
		}

		fmt.Printf("🔍 Scanning: %s\n", dir)

		runner := &ingest.Runner{
			DB:        dbConn,
			ImportDir: dir,
			DryRun:    importDryRun,
			Out:       os.Stdout,
		}

		summary, err := runner.Run()
		if err != nil {
			return err
		}

		printSummary(summary)

		if !importDryRun && summary.Total > 0 {
			report, err := validate.Run(dbConn, time.Now())
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Println()
			report.Print(os.Stdout, importVerbose)
		}

		if summary.Errors > 0 {
			return fmt.Errorf("%d file(s) failed to import", summary.Errors)
		}
		return nil
	},
}

func printSummary(s *ingest.Summary) {
	fmt.Println()
	color.New(color.Bold).Println("Import summary")
	fmt.Printf("  Total CSV files:   %d\n", s.Total)
	fmt.Printf("  New:               %d\n", s.New)
	fmt.Printf("  Changed:           %d\n", s.Changed)
	fmt.Printf("  Unchanged:         %d\n", s.Unchanged)
	fmt.Printf("  Skipped:           %d\n", s.Skipped)
	fmt.Printf("  Errors:            %d\n", s.Errors)
	if s.RowsAdded > 0 {
		fmt.Printf("  Rows added:        %d\n", s.RowsAdded)
	}

	switch {
	case s.Errors > 0:
		color.Yellow("⚠ Some imports failed")
	case s.Imported > 0:
		color.Green("✓ Import complete")
	default:
		color.Green("✓ All files up to date")
	}
}

func init() {
	importCmd.Flags().StringVarP(&importDir, "dir", "d", "", "Directory of CSV exports (overrides config)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would be imported without writing")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Show validation info lines")
}

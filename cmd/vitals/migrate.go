// ABOUTME: CLI command backfilling content hashes on legacy ledger rows.
// ABOUTME: Searches the import directory and its archive for the files.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/ingest"
	"github.com/spf13/cobra"
)

var migrateDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Backfill content hashes for imports recorded before hashing existed",
	Long: `Ledger rows written before hash-based change detection have no content
hash and would be re-processed once on the next import. This command
backfills those hashes by locating each file in the import directory (and
its imported/ archive) and fingerprinting it.

Files that can no longer be found stay unhashed; re-processing them is
harmless because the merge is idempotent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := migrateDir
		if dir == "" {
			dir = cfg.GetImportDir()
		}
		if dir == "" {
			return fmt.Errorf("no import directory: pass --dir or set import_dir in config")
		}

		dirs := []string{dir, filepath.Join(dir, ingest.ArchiveSubdir)}
		res, err := ingest.BackfillHashes(dbConn, dirs)
		if err != nil {
			return fmt.Errorf("hash backfill failed: %w", err)
		}

		color.Green("✓ Backfilled %d hash(es)", res.Updated)
		if len(res.Missing) > 0 {
			color.Yellow("⚠ %d file(s) not found on disk:", len(res.Missing))
			for _, name := range res.Missing {
				fmt.Printf("  - %s\n", name)
			}
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateDir, "dir", "d", "", "Directory of CSV exports (overrides config)")
}

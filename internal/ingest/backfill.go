// ABOUTME: Hash backfill for ledger rows written before change detection.
// ABOUTME: Finds the original file on disk and stores its digest in place.
package ingest

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/harperreed/vitals/internal/db"
)

// BackfillResult summarizes a hash backfill pass.
type BackfillResult struct {
	Updated int      // rows that received a hash
	Missing []string // filenames no longer present in any searched directory
}

// BackfillHashes populates the content hash of legacy ledger rows by locating
// each file in the given directories (the import directory and its archive,
// typically) and fingerprinting it. Files that can no longer be found are
// left NULL; they will be re-processed once if they ever reappear.
func BackfillHashes(database *sql.DB, dirs []string) (*BackfillResult, error) {
	records, err := db.ListImportsMissingHash(database)
	if err != nil {
		return nil, err
	}

	res := &BackfillResult{}
	for _, rec := range records {
		path, found := findFile(dirs, rec.Filename)
		if !found {
			res.Missing = append(res.Missing, rec.Filename)
			continue
		}
		hash, err := HashFile(path)
		if err != nil {
			return res, err
		}
		if err := db.SetImportHash(database, rec.Filename, hash); err != nil {
			return res, err
		}
		res.Updated++
	}
	return res, nil
}

func findFile(dirs []string, filename string) (string, bool) {
	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

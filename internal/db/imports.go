// ABOUTME: Import ledger operations, the gate against re-processing files.
// ABOUTME: One row per filename ever seen; rows are updated, never deleted.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// LookupImport returns the ledger record for a filename, or nil if the file
// has never been imported.
func LookupImport(db *sql.DB, filename string) (*models.ImportRecord, error) {
	row := db.QueryRow(`
		SELECT import_id, filename, imported_at, rows_added, source, file_hash
		FROM imports WHERE filename = ?`, filename)

	rec, err := scanImport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lookup import %q: %w", filename, err)
	}
	return rec, nil
}

// RecordImport inserts a ledger row for a genuinely new file. Fails if the
// filename is already present; callers must use UpdateImport for re-imports.
func RecordImport(db *sql.DB, filename, hash string, rowsAdded int, source string) error {
	var hashArg any
	if hash != "" {
		hashArg = hash
	}
	_, err := db.Exec(`
		INSERT INTO imports (filename, imported_at, rows_added, source, file_hash)
		VALUES (?, ?, ?, ?, ?)`,
		filename, fmtTime(time.Now()), rowsAdded, source, hashArg)
	if err != nil {
		return fmt.Errorf("failed to record import %q: %w", filename, err)
	}
	return nil
}

// UpdateImport refreshes an existing ledger row after re-processing a changed
// file, replacing its hash, timestamp, and row count in place.
func UpdateImport(db *sql.DB, filename, newHash string, rowsAdded int) error {
	res, err := db.Exec(`
		UPDATE imports
		SET imported_at = ?, rows_added = ?, file_hash = ?
		WHERE filename = ?`,
		fmtTime(time.Now()), rowsAdded, newHash, filename)
	if err != nil {
		return fmt.Errorf("failed to update import %q: %w", filename, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no import record for %q; use RecordImport for new files", filename)
	}
	return nil
}

// SetImportHash backfills the content hash of a legacy ledger row without
// touching its import timestamp or row count.
func SetImportHash(db *sql.DB, filename, hash string) error {
	_, err := db.Exec(`UPDATE imports SET file_hash = ? WHERE filename = ?`, hash, filename)
	if err != nil {
		return fmt.Errorf("failed to set hash for %q: %w", filename, err)
	}
	return nil
}

// ListImportsMissingHash returns ledger rows written before content hashing
// existed, oldest first.
func ListImportsMissingHash(db *sql.DB) ([]models.ImportRecord, error) {
	rows, err := db.Query(`
		SELECT import_id, filename, imported_at, rows_added, source, file_hash
		FROM imports
		WHERE file_hash IS NULL OR file_hash = ''
		ORDER BY import_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports missing hash: %w", err)
	}
	defer rows.Close()

	var out []models.ImportRecord
	for rows.Next() {
		rec, err := scanImportRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// CountImports returns the total number of ledger rows.
func CountImports(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM imports").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count imports: %w", err)
	}
	return n, nil
}

type importScanner interface {
	Scan(dest ...any) error
}

func scanImportFrom(s importScanner) (*models.ImportRecord, error) {
	var rec models.ImportRecord
	var importedAt string
	var hash sql.NullString
	if err := s.Scan(&rec.ID, &rec.Filename, &importedAt, &rec.RowsAdded,
		&rec.Source, &hash); err != nil {
		return nil, err
	}
	t, err := parseTime(importedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse imported_at %q: %w", importedAt, err)
	}
	rec.ImportedAt = t
	if hash.Valid && hash.String != "" {
		rec.FileHash = &hash.String
	}
	return &rec, nil
}

func scanImport(row *sql.Row) (*models.ImportRecord, error) {
	return scanImportFrom(row)
}

func scanImportRows(rows *sql.Rows) (*models.ImportRecord, error) {
	rec, err := scanImportFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan import record: %w", err)
	}
	return rec, nil
}

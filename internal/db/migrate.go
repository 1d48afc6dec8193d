// ABOUTME: Schema migration for databases created before content hashing.
// ABOUTME: Adds the nullable file_hash column to the imports ledger.
package db

import (
	"database/sql"
	"fmt"
)

// EnsureFileHashColumn adds the file_hash column to the imports table when a
// database predates hash-based change detection. Existing rows keep a NULL
// hash and are re-processed once, or backfilled via the migrate command.
func EnsureFileHashColumn(db *sql.DB) error {
	has, err := hasColumn(db, "imports", "file_hash")
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	if _, err := db.Exec(`ALTER TABLE imports ADD COLUMN file_hash TEXT`); err != nil {
		return fmt.Errorf("failed to add file_hash column: %w", err)
	}
	return nil
}

func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to read table info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

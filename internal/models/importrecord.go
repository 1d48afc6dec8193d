// ABOUTME: ImportRecord model, one ledger row per filename ever ingested.
// ABOUTME: Nullable FileHash keeps records from before hashing existed valid.
package models

import "time"

// ImportRecord is the ledger entry for a processed file. FileHash is nil for
// records written before content hashing existed; those files are re-processed
// once to populate it.
type ImportRecord struct {
	ID         int64
	Filename   string
	ImportedAt time.Time
	RowsAdded  int
	Source     string
	FileHash   *string
}

// HasHash reports whether this record carries a content hash.
func (r *ImportRecord) HasHash() bool {
	return r.FileHash != nil && *r.FileHash != ""
}

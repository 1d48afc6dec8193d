// ABOUTME: Import orchestrator: discover, change-detect, route, merge, record.
// ABOUTME: Strictly sequential; merge always commits before the ledger write.
package ingest

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harperreed/vitals/internal/db"
)

// ArchiveSubdir is where processed exports are relocated after a clean run.
const ArchiveSubdir = "imported"

// FileStatus is the outcome of one file in a run.
type FileStatus string

const (
	StatusImported   FileStatus = "imported"   // new file, merged and recorded
	StatusReimported FileStatus = "reimported" // changed file, merged and updated
	StatusUnchanged  FileStatus = "unchanged"  // hash matches ledger, skipped
	StatusSkipped    FileStatus = "skipped"    // excluded from file ingestion
	StatusError      FileStatus = "error"      // structural failure, retry next run
)

// FileResult describes what happened to a single file.
type FileResult struct {
	Filename  string
	Kind      SchemaKind
	Status    FileStatus
	RowsAdded int
	Err       error
}

// Summary aggregates a whole run.
type Summary struct {
	Total     int
	New       int
	Changed   int
	Unchanged int
	Skipped   int
	Imported  int
	Errors    int
	RowsAdded int
	Archived  int
	Results   []FileResult
}

// Runner executes one batch import over a directory of CSV exports. The
// store handle is passed in explicitly; the runner owns no global state and
// processes files one at a time, so a crash leaves at most one file
// partially applied, detectable on the next run via the ledger.
type Runner struct {
	DB        *sql.DB
	ImportDir string
	DryRun    bool
	Out       io.Writer // progress output; defaults to io.Discard
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

// Run scans the import directory, ingests every new or changed file, and
// archives processed files when the run is clean. The returned Summary is
// valid even when individual files fail; per-file errors are in Results.
func (r *Runner) Run() (*Summary, error) {
	files, err := r.discover()
	if err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(files)}
	if len(files) == 0 {
		fmt.Fprintln(r.out(), "No CSV files found")
		return summary, nil
	}

	for _, path := range files {
		result := r.processFile(path)
		summary.Results = append(summary.Results, result)

		switch result.Status {
		case StatusImported:
			summary.New++
			summary.Imported++
			summary.RowsAdded += result.RowsAdded
		case StatusReimported:
			summary.Changed++
			summary.Imported++
			summary.RowsAdded += result.RowsAdded
		case StatusUnchanged:
			summary.Unchanged++
		case StatusSkipped:
			summary.Skipped++
		case StatusError:
			summary.Errors++
			fmt.Fprintf(r.out(), "✗ %s: %v\n", result.Filename, result.Err)
		}
	}

	// Keep failed files in place for inspection and retry: the archive move
	// happens only after a fully clean run.
	if !r.DryRun && summary.Errors == 0 {
		archived, err := r.archive(summary)
		if err != nil {
			return summary, fmt.Errorf("failed to archive processed files: %w", err)
		}
		summary.Archived = archived
	}

	return summary, nil
}

func (r *Runner) discover() ([]string, error) {
	entries, err := os.ReadDir(r.ImportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read import directory %s: %w", r.ImportDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(r.ImportDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) processFile(path string) FileResult {
	filename := filepath.Base(path)
	kind := Classify(filename)
	result := FileResult{Filename: filename, Kind: kind}

	if kind == KindGlucose {
		fmt.Fprintf(r.out(), "⏭ %s: glucose export, handled by the libre sync\n", filename)
		result.Status = StatusSkipped
		return result
	}
	if kind == KindUnknown {
		fmt.Fprintf(r.out(), "? %s: unknown prefix, attempting generic metrics import\n", filename)
	}

	hash, err := HashFile(path)
	if err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}

	record, err := db.LookupImport(r.DB, filename)
	if err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}

	isReimport := false
	switch {
	case record == nil:
		// new file
	case record.HasHash() && *record.FileHash == hash:
		fmt.Fprintf(r.out(), "= %s: unchanged\n", filename)
		result.Status = StatusUnchanged
		return result
	default:
		// Changed content, or a legacy record with no hash: re-process once
		// and populate the hash.
		isReimport = true
	}

	if r.DryRun {
		verb := "would import"
		if isReimport {
			verb = "would re-import"
		}
		fmt.Fprintf(r.out(), "→ %s: %s (%s)\n", filename, verb, kind)
		result.Status = StatusImported
		if isReimport {
			result.Status = StatusReimported
		}
		return result
	}

	rowsAdded, sourceKind, err := r.ingest(path, kind)
	if err != nil {
		// Ledger intentionally not written: the file stays new/changed and
		// is retried on the next run.
		result.Status = StatusError
		result.Err = err
		return result
	}

	// Merge committed above; only now may the ledger see this file.
	if isReimport {
		err = db.UpdateImport(r.DB, filename, hash, rowsAdded)
	} else {
		err = db.RecordImport(r.DB, filename, hash, rowsAdded, sourceKind)
	}
	if err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}

	result.RowsAdded = rowsAdded
	if isReimport {
		result.Status = StatusReimported
		fmt.Fprintf(r.out(), "✓ %s: re-imported, %d new rows\n", filename, rowsAdded)
	} else {
		result.Status = StatusImported
		fmt.Fprintf(r.out(), "✓ %s: imported, %d rows\n", filename, rowsAdded)
	}
	return result
}

// ingest normalizes one file and merges it into the fact store. Returns the
// rows actually added post-dedup and the ledger source tag.
func (r *Runner) ingest(path string, kind SchemaKind) (int, string, error) {
	table, err := ReadCSVFile(path)
	if err != nil {
		return 0, "", err
	}

	switch kind {
	case KindWorkouts:
		workouts, err := NormalizeWorkouts(table)
		if err != nil {
			return 0, "", err
		}
		added, err := db.InsertWorkouts(r.DB, workouts)
		return added, kind.String(), err

	case KindMedications:
		events, err := NormalizeMedications(table)
		if err != nil {
			return 0, "", err
		}
		added, err := db.InsertMedications(r.DB, events)
		return added, kind.String(), err

	case KindCycleTracking:
		readings, err := NormalizeCycle(table)
		if err != nil {
			return 0, "", err
		}
		added, err := db.InsertReadings(r.DB, readings)
		return added, kind.String(), err

	default: // KindGenericMetrics and the Unknown fallback
		res, err := NormalizeMetrics(table, KindGenericMetrics.String())
		if err != nil {
			return 0, "", err
		}
		if res.Duplicates > 0 {
			fmt.Fprintf(r.out(), "  removed %d duplicate readings\n", res.Duplicates)
		}
		added, err := db.InsertReadings(r.DB, res.Readings)
		return added, KindGenericMetrics.String(), err
	}
}

// archive relocates processed exports, plus any auxiliary non-CSV artifacts,
// into the imported/ subdirectory so the import directory only ever holds
// unprocessed input. Glucose exports stay put; they belong to the libre sync.
func (r *Runner) archive(summary *Summary) (int, error) {
	archiveDir := filepath.Join(r.ImportDir, ArchiveSubdir)
	if err := os.MkdirAll(archiveDir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create archive directory: %w", err)
	}

	processed := make(map[string]bool)
	for _, res := range summary.Results {
		switch res.Status {
		case StatusImported, StatusReimported, StatusUnchanged:
			processed[res.Filename] = true
		}
	}

	entries, err := os.ReadDir(r.ImportDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read import directory: %w", err)
	}

	moved := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		isCSV := strings.EqualFold(filepath.Ext(name), ".csv")
		if isCSV && !processed[name] {
			continue
		}
		src := filepath.Join(r.ImportDir, name)
		dst := filepath.Join(archiveDir, name)
		if err := os.Rename(src, dst); err != nil {
			return moved, fmt.Errorf("failed to move %s to archive: %w", name, err)
		}
		moved++
	}

	if moved > 0 {
		fmt.Fprintf(r.out(), "📦 archived %d file(s) to %s\n", moved, archiveDir)
	}
	return moved, nil
}

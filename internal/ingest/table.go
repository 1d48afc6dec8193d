// ABOUTME: RawTable, the in-memory form of a parsed CSV export.
// ABOUTME: Normalizers consume tables; they never touch the filesystem.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
)

// RawTable is a parsed CSV file: one header row plus data rows. Rows may be
// ragged; Get treats missing trailing cells as empty.
type RawTable struct {
	Filename string
	Headers  []string
	Rows     [][]string
}

// ReadCSVFile parses a CSV export into a RawTable. The first record is the
// header row. Returns an error for unreadable or empty files.
func ReadCSVFile(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // exports occasionally have ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file: %s", path)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return &RawTable{
		Filename: filenameOf(path),
		Headers:  headers,
		Rows:     records[1:],
	}, nil
}

func filenameOf(path string) string {
	if i := strings.LastIndexByte(path, os.PathSeparator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Col returns the index of a named column, or -1 if absent.
func (t *RawTable) Col(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Get returns the trimmed cell at a column index, or "" when the row is too
// short or the index is -1.
func (t *RawTable) Get(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// timestampLayouts are the formats seen across the export schemas, tried in
// order. Layouts with explicit offsets come first so zone info is never lost.
var timestampLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp parses a timestamp cell with the known export layouts.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

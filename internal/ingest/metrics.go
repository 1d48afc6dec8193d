// ABOUTME: Generic wide-metric normalizer, the HealthMetrics un-pivot.
// ABOUTME: Wide rows become (timestamp, metric, value) triples, deduplicated.
package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/harperreed/vitals/internal/models"
)

// timestampColumn is the required column in wide metric exports.
const timestampColumn = "Date/Time"

// metricHeaderPattern matches "<name> (<unit>)" where the unit itself
// contains no parentheses.
var metricHeaderPattern = regexp.MustCompile(`^(.+?)\s*\(([^()]+)\)$`)

// ParseMetricColumn extracts metric name and unit from a column header.
//
//	"Active Energy (kcal)"        → ("Active Energy", "kcal")
//	"Sleep Analysis [Total] (hr)" → ("Sleep Analysis [Total]", "hr")
//	"Resting Heart Rate"          → ("Resting Heart Rate", "")
func ParseMetricColumn(column string) (metric, unit string) {
	if m := metricHeaderPattern.FindStringSubmatch(column); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return column, ""
}

// MetricsResult carries the normalized readings plus bookkeeping counts.
type MetricsResult struct {
	Readings   []models.Reading
	Duplicates int // rows removed by first-wins key dedup
	Skipped    int // cells dropped: empty, non-numeric, or bad timestamp
}

// NormalizeMetrics un-pivots a wide metric table into canonical readings
// tagged with the given source ("healthkit" for the standard export). The
// table must have a Date/Time column; that is the only structural
// requirement. Sparse cells are expected and skipped. Duplicate
// (timestamp, metric, source) triples keep the first occurrence.
func NormalizeMetrics(t *RawTable, source string) (*MetricsResult, error) {
	tsCol := t.Col(timestampColumn)
	if tsCol < 0 {
		return nil, fmt.Errorf("%s: missing %q column", t.Filename, timestampColumn)
	}

	res := &MetricsResult{}
	seen := make(map[string]bool)

	for _, row := range t.Rows {
		tsRaw := t.Get(row, tsCol)
		if tsRaw == "" {
			continue
		}
		ts, err := parseTimestamp(tsRaw)
		if err != nil {
			// Value-level problem: drop the row, never abort the file.
			res.Skipped++
			continue
		}

		for col, header := range t.Headers {
			if col == tsCol {
				continue
			}
			cell := t.Get(row, col)
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				res.Skipped++
				continue
			}

			metric, unit := ParseMetricColumn(header)
			r := models.Reading{
				Timestamp: ts,
				Metric:    metric,
				Value:     value,
				Unit:      unit,
				Source:    source,
			}
			if seen[r.Key()] {
				res.Duplicates++
				continue
			}
			seen[r.Key()] = true
			res.Readings = append(res.Readings, r)
		}
	}

	return res, nil
}

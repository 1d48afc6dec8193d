// ABOUTME: Readings merge and query operations for the fact store.
// ABOUTME: Insert-if-absent semantics; key collisions are dropped, not errors.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// InsertReadings merges readings into the fact store with insert-if-absent
// semantics. All inserts for one call share a transaction, so a file either
// lands as a unit or not at all. Returns the number of rows actually added;
// rows whose (timestamp, metric, source) key already exists are skipped.
func InsertReadings(db *sql.DB, readings []models.Reading) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO readings (timestamp, metric, value, unit, source)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, r := range readings {
		res, err := stmt.Exec(fmtTime(r.Timestamp), r.Metric, r.Value, r.Unit, r.Source)
		if err != nil {
			return 0, fmt.Errorf("failed to insert reading %s: %w", r.Key(), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit readings: %w", err)
	}
	return added, nil
}

// CountReadings returns the total number of stored readings.
func CountReadings(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM readings").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count readings: %w", err)
	}
	return n, nil
}

// ListHeartRateOutliers returns heart-rate-family readings outside [lo, hi],
// newest first. Variability and Recovery sub-metrics use different units and
// are excluded.
func ListHeartRateOutliers(db *sql.DB, lo, hi float64, limit int) ([]models.Reading, error) {
	rows, err := db.Query(`
		SELECT timestamp, metric, value, unit, source
		FROM readings
		WHERE metric LIKE '%Heart Rate%'
		  AND metric NOT LIKE '%Variability%'
		  AND metric NOT LIKE '%Recovery%'
		  AND (value < ? OR value > ?)
		ORDER BY timestamp DESC
		LIMIT ?`, lo, hi, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query heart rate outliers: %w", err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

// CountFutureReadings returns the number of readings timestamped after now,
// along with the earliest offending timestamp (nil when there are none).
func CountFutureReadings(db *sql.DB, now time.Time) (int, *time.Time, error) {
	var count int
	var earliest sql.NullString
	err := db.QueryRow(`
		SELECT COUNT(*), MIN(timestamp)
		FROM readings
		WHERE timestamp > ?`, fmtTime(now)).Scan(&count, &earliest)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count future readings: %w", err)
	}
	if count == 0 || !earliest.Valid {
		return count, nil, nil
	}
	t, err := parseTime(earliest.String)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to parse timestamp %q: %w", earliest.String, err)
	}
	return count, &t, nil
}

// DistinctReadingDates returns every calendar date (UTC, YYYY-MM-DD) with at
// least one reading, in ascending order.
func DistinctReadingDates(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT DISTINCT DATE(timestamp) FROM readings ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// DailyValue is a per-calendar-day aggregate of one metric.
type DailyValue struct {
	Date  string // YYYY-MM-DD
	Value float64
}

// DailyMetricAverages returns the per-day average of a metric in date order.
func DailyMetricAverages(db *sql.DB, metric string) ([]DailyValue, error) {
	rows, err := db.Query(`
		SELECT DATE(timestamp) as date, AVG(value)
		FROM readings
		WHERE metric = ?
		GROUP BY DATE(timestamp)
		ORDER BY date`, metric)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily averages: %w", err)
	}
	defer rows.Close()

	var out []DailyValue
	for rows.Next() {
		var dv DailyValue
		if err := rows.Scan(&dv.Date, &dv.Value); err != nil {
			return nil, fmt.Errorf("failed to scan daily average: %w", err)
		}
		out = append(out, dv)
	}
	return out, rows.Err()
}

// MetricCount pairs a metric name with its reading count.
type MetricCount struct {
	Metric string
	Count  int
}

// TopMetrics returns the most common metrics for a source, highest count first.
func TopMetrics(db *sql.DB, source string, limit int) ([]MetricCount, error) {
	rows, err := db.Query(`
		SELECT metric, COUNT(*) as count
		FROM readings
		WHERE source = ?
		GROUP BY metric
		ORDER BY count DESC
		LIMIT ?`, source, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top metrics: %w", err)
	}
	defer rows.Close()

	var out []MetricCount
	for rows.Next() {
		var mc MetricCount
		if err := rows.Scan(&mc.Metric, &mc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan metric count: %w", err)
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

// RollupRow is one bucket of an aggregate rollup query.
type RollupRow struct {
	Bucket string
	Value  float64
}

// Rollup periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// CumulativeMetrics are summed per bucket; everything else is averaged.
var CumulativeMetrics = map[string]bool{
	"Step Count":    true,
	"Active Energy": true,
	"Basal Energy":  true,
}

// Rollup aggregates a metric per daily/weekly/monthly bucket. Cumulative
// metrics (steps, energy) are summed; point-in-time metrics are averaged.
func Rollup(db *sql.DB, metric, period string) ([]RollupRow, error) {
	var bucket string
	switch period {
	case PeriodDaily:
		bucket = "DATE(timestamp)"
	case PeriodWeekly:
		bucket = "strftime('%Y-W%W', timestamp)"
	case PeriodMonthly:
		bucket = "strftime('%Y-%m', timestamp)"
	default:
		return nil, fmt.Errorf("unknown rollup period: %q", period)
	}

	agg := "AVG(value)"
	if CumulativeMetrics[metric] {
		agg = "SUM(value)"
	}

	rows, err := db.Query(`
		SELECT `+bucket+` as bucket, `+agg+`
		FROM readings
		WHERE metric = ?
		GROUP BY bucket
		ORDER BY bucket`, metric)
	if err != nil {
		return nil, fmt.Errorf("failed to query rollup: %w", err)
	}
	defer rows.Close()

	var out []RollupRow
	for rows.Next() {
		var rr RollupRow
		if err := rows.Scan(&rr.Bucket, &rr.Value); err != nil {
			return nil, fmt.Errorf("failed to scan rollup row: %w", err)
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// LatestReading returns the most recent reading for a metric, or nil if the
// metric has never been recorded.
func LatestReading(db *sql.DB, metric string) (*models.Reading, error) {
	row := db.QueryRow(`
		SELECT timestamp, metric, value, unit, source
		FROM readings
		WHERE metric = ?
		ORDER BY timestamp DESC
		LIMIT 1`, metric)

	r, err := scanReading(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// ListReadings returns recent readings, optionally filtered by metric.
func ListReadings(db *sql.DB, metric string, limit int) ([]models.Reading, error) {
	var rows *sql.Rows
	var err error

	if metric != "" {
		rows, err = db.Query(`
			SELECT timestamp, metric, value, unit, source
			FROM readings WHERE metric = ?
			ORDER BY timestamp DESC LIMIT ?`, metric, limit)
	} else {
		rows, err = db.Query(`
			SELECT timestamp, metric, value, unit, source
			FROM readings ORDER BY timestamp DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

func scanReading(row *sql.Row) (*models.Reading, error) {
	var r models.Reading
	var ts string
	if err := row.Scan(&ts, &r.Metric, &r.Value, &r.Unit, &r.Source); err != nil {
		return nil, err
	}
	t, err := parseTime(ts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
	}
	r.Timestamp = t
	return &r, nil
}

func scanReadings(rows *sql.Rows) ([]models.Reading, error) {
	var out []models.Reading
	for rows.Next() {
		var r models.Reading
		var ts string
		if err := rows.Scan(&ts, &r.Metric, &r.Value, &r.Unit, &r.Source); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		t, err := parseTime(ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
		}
		r.Timestamp = t
		out = append(out, r)
	}
	return out, rows.Err()
}

// ABOUTME: Medication merge and query operations.
// ABOUTME: Insert-if-absent on (timestamp, medication); collisions dropped.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// InsertMedications merges dose events into the fact store, skipping rows
// whose (timestamp, medication) key already exists. All inserts share one
// transaction. Returns the number of rows actually added.
func InsertMedications(db *sql.DB, events []models.MedicationEvent) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO medications
			(timestamp, scheduled_at, medication, dosage, scheduled_dosage, unit, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, e := range events {
		res, err := stmt.Exec(
			fmtTime(e.Timestamp), fmtTimePtr(e.ScheduledAt), e.Medication,
			e.Dosage, e.ScheduledDosage, e.Unit, e.Status)
		if err != nil {
			return 0, fmt.Errorf("failed to insert medication %s/%s: %w",
				e.Medication, e.Timestamp.Format(time.RFC3339), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit medications: %w", err)
	}
	return added, nil
}

// CountMedications returns the total number of stored dose events.
func CountMedications(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM medications").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count medications: %w", err)
	}
	return n, nil
}

// ListMedications returns recent dose events, optionally filtered by name.
func ListMedications(db *sql.DB, medication string, limit int) ([]models.MedicationEvent, error) {
	var rows *sql.Rows
	var err error

	const cols = `timestamp, scheduled_at, medication, dosage, scheduled_dosage, unit, status`

	if medication != "" {
		rows, err = db.Query(`
			SELECT `+cols+` FROM medications WHERE medication = ?
			ORDER BY timestamp DESC LIMIT ?`, medication, limit)
	} else {
		rows, err = db.Query(`
			SELECT `+cols+` FROM medications
			ORDER BY timestamp DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	defer rows.Close()

	var out []models.MedicationEvent
	for rows.Next() {
		var e models.MedicationEvent
		var ts string
		var scheduled sql.NullString
		var unit, status sql.NullString
		if err := rows.Scan(&ts, &scheduled, &e.Medication, &e.Dosage,
			&e.ScheduledDosage, &unit, &status); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		t, err := parseTime(ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
		}
		e.Timestamp = t
		if scheduled.Valid {
			s, err := parseTime(scheduled.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse scheduled time %q: %w", scheduled.String, err)
			}
			e.ScheduledAt = &s
		}
		e.Unit = unit.String
		e.Status = status.String
		out = append(out, e)
	}
	return out, rows.Err()
}

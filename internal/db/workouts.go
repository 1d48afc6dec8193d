// ABOUTME: Workout merge and query operations.
// ABOUTME: Insert-if-absent on (start_time, type); collisions dropped.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// InsertWorkouts merges workouts into the fact store, skipping rows whose
// (start_time, type) key already exists. All inserts share one transaction.
// Returns the number of rows actually added.
func InsertWorkouts(db *sql.DB, workouts []models.Workout) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO workouts
			(start_time, end_time, type, duration_seconds, total_energy_kcal,
			 active_energy_kcal, max_heart_rate, avg_heart_rate, distance_km, step_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range workouts {
		res, err := stmt.Exec(
			fmtTime(w.StartTime), fmtTimePtr(w.EndTime), w.WorkoutType,
			w.DurationSeconds, w.TotalEnergyKcal, w.ActiveEnergyKcal,
			w.MaxHeartRate, w.AvgHeartRate, w.DistanceKm, w.StepCount)
		if err != nil {
			return 0, fmt.Errorf("failed to insert workout %s/%s: %w",
				w.WorkoutType, w.StartTime.Format(time.RFC3339), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit workouts: %w", err)
	}
	return added, nil
}

// CountWorkouts returns the total number of stored workouts.
func CountWorkouts(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM workouts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count workouts: %w", err)
	}
	return n, nil
}

// ListWorkouts returns recent workouts, optionally filtered by type.
func ListWorkouts(db *sql.DB, workoutType string, limit int) ([]models.Workout, error) {
	var rows *sql.Rows
	var err error

	const cols = `start_time, end_time, type, duration_seconds, total_energy_kcal,
		active_energy_kcal, max_heart_rate, avg_heart_rate, distance_km, step_count`

	if workoutType != "" {
		rows, err = db.Query(`
			SELECT `+cols+` FROM workouts WHERE type = ?
			ORDER BY start_time DESC LIMIT ?`, workoutType, limit)
	} else {
		rows, err = db.Query(`
			SELECT `+cols+` FROM workouts
			ORDER BY start_time DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var out []models.Workout
	for rows.Next() {
		var w models.Workout
		var start string
		var end sql.NullString
		if err := rows.Scan(&start, &end, &w.WorkoutType, &w.DurationSeconds,
			&w.TotalEnergyKcal, &w.ActiveEnergyKcal, &w.MaxHeartRate,
			&w.AvgHeartRate, &w.DistanceKm, &w.StepCount); err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		t, err := parseTime(start)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start time %q: %w", start, err)
		}
		w.StartTime = t
		if end.Valid {
			e, err := parseTime(end.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end time %q: %w", end.String, err)
			}
			w.EndTime = &e
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ABOUTME: Tests for workout merge operations.
// ABOUTME: Validates insert-if-absent on the (start_time, type) key.
package db

import (
	"testing"

	"github.com/harperreed/vitals/internal/models"
)

func TestInsertWorkoutsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	duration := 1800
	distance := 5.2
	workouts := []models.Workout{
		{
			StartTime:       mustTime(t, "2026-01-05T07:30:00Z"),
			WorkoutType:     "Running",
			DurationSeconds: &duration,
			DistanceKm:      &distance,
		},
		{
			StartTime:   mustTime(t, "2026-01-05T18:00:00Z"),
			WorkoutType: "Yoga",
		},
	}

	added, err := InsertWorkouts(db, workouts)
	if err != nil {
		t.Fatalf("InsertWorkouts failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 workouts added, got %d", added)
	}

	added, err = InsertWorkouts(db, workouts)
	if err != nil {
		t.Fatalf("second InsertWorkouts failed: %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 on re-insert, got %d", added)
	}

	count, err := CountWorkouts(db)
	if err != nil {
		t.Fatalf("CountWorkouts failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 workouts, got %d", count)
	}
}

func TestInsertWorkoutsSameStartDifferentType(t *testing.T) {
	db := setupTestDB(t)

	start := mustTime(t, "2026-01-05T07:30:00Z")
	workouts := []models.Workout{
		{StartTime: start, WorkoutType: "Running"},
		{StartTime: start, WorkoutType: "Cycling"},
	}
	added, err := InsertWorkouts(db, workouts)
	if err != nil {
		t.Fatalf("InsertWorkouts failed: %v", err)
	}
	if added != 2 {
		t.Errorf("different types at the same start should both insert, got %d", added)
	}
}

func TestListWorkouts(t *testing.T) {
	db := setupTestDB(t)

	workouts := []models.Workout{
		{StartTime: mustTime(t, "2026-01-05T07:30:00Z"), WorkoutType: "Running"},
		{StartTime: mustTime(t, "2026-01-06T07:30:00Z"), WorkoutType: "Running"},
		{StartTime: mustTime(t, "2026-01-07T07:30:00Z"), WorkoutType: "Yoga"},
	}
	if _, err := InsertWorkouts(db, workouts); err != nil {
		t.Fatalf("InsertWorkouts failed: %v", err)
	}

	all, err := ListWorkouts(db, "", 10)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 workouts, got %d", len(all))
	}
	// Newest first
	if all[0].WorkoutType != "Yoga" {
		t.Errorf("expected newest workout first, got %s", all[0].WorkoutType)
	}

	runs, err := ListWorkouts(db, "Running", 10)
	if err != nil {
		t.Fatalf("ListWorkouts by type failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 running workouts, got %d", len(runs))
	}
}

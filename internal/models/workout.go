// ABOUTME: Workout model for exported exercise sessions.
// ABOUTME: Unique per (StartTime, WorkoutType); optional fields are pointers.
package models

import "time"

// Workout is one exercise session from a Workouts export. Every field except
// StartTime and WorkoutType is optional in the source and stays nil when the
// export leaves it blank or unparseable.
type Workout struct {
	StartTime        time.Time
	EndTime          *time.Time
	WorkoutType      string
	DurationSeconds  *int
	TotalEnergyKcal  *float64
	ActiveEnergyKcal *float64
	MaxHeartRate     *float64
	AvgHeartRate     *float64
	DistanceKm       *float64
	StepCount        *int
}

// ABOUTME: Workouts normalizer, one row per exercise session.
// ABOUTME: Permissive field parsing; only Type and Start are required.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// ParseDuration converts "HH:MM:SS" or "MM:SS" to whole seconds. Malformed
// input yields nil rather than an error; a missing duration never costs the
// row.
func ParseDuration(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return nil
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil
		}
		nums[i] = n
	}
	var seconds int
	if len(nums) == 3 {
		seconds = nums[0]*3600 + nums[1]*60 + nums[2]
	} else {
		seconds = nums[0]*60 + nums[1]
	}
	return &seconds
}

// parseFloatPtr converts a cell to *float64; empty or non-numeric → nil.
func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseIntPtr converts a cell to *int; empty or non-numeric → nil.
func parseIntPtr(s string) *int {
	f := parseFloatPtr(s)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// NormalizeWorkouts transforms a Workouts export into workout records. Type
// and Start columns are structural requirements; rows missing either value
// are dropped. Every other field degrades to nil when blank or unparseable.
func NormalizeWorkouts(t *RawTable) ([]models.Workout, error) {
	typeCol := t.Col("Type")
	startCol := t.Col("Start")
	if typeCol < 0 || startCol < 0 {
		return nil, fmt.Errorf("%s: missing required Type/Start columns", t.Filename)
	}

	endCol := t.Col("End")
	durationCol := t.Col("Duration")
	totalEnergyCol := t.Col("Total Energy (kcal)")
	activeEnergyCol := t.Col("Active Energy (kcal)")
	maxHRCol := t.Col("Max Heart Rate (bpm)")
	avgHRCol := t.Col("Avg Heart Rate (bpm)")
	distanceCol := t.Col("Distance (km)")
	stepsCol := t.Col("Step Count (count)")

	var workouts []models.Workout
	for _, row := range t.Rows {
		workoutType := t.Get(row, typeCol)
		startRaw := t.Get(row, startCol)
		if workoutType == "" || startRaw == "" {
			continue
		}
		start, err := parseTimestamp(startRaw)
		if err != nil {
			continue
		}

		var end *time.Time
		if e, err := parseTimestamp(t.Get(row, endCol)); err == nil {
			end = &e
		}

		workouts = append(workouts, models.Workout{
			StartTime:        start,
			EndTime:          end,
			WorkoutType:      workoutType,
			DurationSeconds:  ParseDuration(t.Get(row, durationCol)),
			TotalEnergyKcal:  parseFloatPtr(t.Get(row, totalEnergyCol)),
			ActiveEnergyKcal: parseFloatPtr(t.Get(row, activeEnergyCol)),
			MaxHeartRate:     parseFloatPtr(t.Get(row, maxHRCol)),
			AvgHeartRate:     parseFloatPtr(t.Get(row, avgHRCol)),
			DistanceKm:       parseFloatPtr(t.Get(row, distanceCol)),
			StepCount:        parseIntPtr(t.Get(row, stepsCol)),
		})
	}

	return workouts, nil
}

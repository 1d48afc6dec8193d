// ABOUTME: Nutrition log operations for manually logged meals.
// ABOUTME: Supports create, list, and per-day macro summaries.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitals/internal/models"
)

// LogNutrition inserts a nutrition entry.
func LogNutrition(db *sql.DB, e *models.NutritionEntry) error {
	_, err := db.Exec(`
		INSERT INTO nutrition_log
			(entry_id, meal_time, meal_type, meal_name, calories, protein_g,
			 carbs_g, fat_g, fiber_g, sugar_g, sodium_mg, notes, source, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), fmtTime(e.MealTime), e.MealType, e.MealName,
		e.Calories, e.ProteinG, e.CarbsG, e.FatG, e.FiberG, e.SugarG,
		e.SodiumMg, e.Notes, e.Source, fmtTime(e.LoggedAt))
	if err != nil {
		return fmt.Errorf("failed to log nutrition entry: %w", err)
	}
	return nil
}

// ListNutrition returns recent nutrition entries, newest first.
func ListNutrition(db *sql.DB, limit int) ([]models.NutritionEntry, error) {
	rows, err := db.Query(`
		SELECT entry_id, meal_time, meal_type, meal_name, calories, protein_g,
		       carbs_g, fat_g, fiber_g, sugar_g, sodium_mg, notes, source, logged_at
		FROM nutrition_log
		ORDER BY meal_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition entries: %w", err)
	}
	defer rows.Close()

	var out []models.NutritionEntry
	for rows.Next() {
		var e models.NutritionEntry
		var id, mealTime, loggedAt string
		var mealType, mealName, source sql.NullString
		if err := rows.Scan(&id, &mealTime, &mealType, &mealName, &e.Calories,
			&e.ProteinG, &e.CarbsG, &e.FatG, &e.FiberG, &e.SugarG,
			&e.SodiumMg, &e.Notes, &source, &loggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nutrition entry: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry id %q: %w", id, err)
		}
		e.ID = parsed
		t, err := parseTime(mealTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse meal time %q: %w", mealTime, err)
		}
		e.MealTime = t
		if lt, err := parseTime(loggedAt); err == nil {
			e.LoggedAt = lt
		}
		e.MealType = mealType.String
		e.MealName = mealName.String
		e.Source = source.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// DailyMacros is one day's nutrition totals.
type DailyMacros struct {
	Date     string
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
	Meals    int
}

// NutritionSummary returns per-day macro totals for the last N days.
func NutritionSummary(db *sql.DB, days int) ([]DailyMacros, error) {
	since := time.Now().AddDate(0, 0, -days)
	rows, err := db.Query(`
		SELECT DATE(meal_time) as date,
		       COALESCE(SUM(calories), 0),
		       COALESCE(SUM(protein_g), 0),
		       COALESCE(SUM(carbs_g), 0),
		       COALESCE(SUM(fat_g), 0),
		       COUNT(*)
		FROM nutrition_log
		WHERE meal_time >= ?
		GROUP BY DATE(meal_time)
		ORDER BY date DESC`, fmtTime(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrition summary: %w", err)
	}
	defer rows.Close()

	var out []DailyMacros
	for rows.Next() {
		var d DailyMacros
		if err := rows.Scan(&d.Date, &d.Calories, &d.ProteinG, &d.CarbsG,
			&d.FatG, &d.Meals); err != nil {
			return nil, fmt.Errorf("failed to scan nutrition summary: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

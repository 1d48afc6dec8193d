// ABOUTME: NutritionEntry model for manually logged meals.
// ABOUTME: Macros are optional; unset values stay nil rather than zero.
package models

import (
	"time"

	"github.com/google/uuid"
)

// NutritionEntry is one logged meal with macronutrient totals.
type NutritionEntry struct {
	ID       uuid.UUID
	MealTime time.Time
	MealType string // breakfast, lunch, dinner, snack
	MealName string
	Calories *float64
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
	FiberG   *float64
	SugarG   *float64
	SodiumMg *float64
	Notes    *string
	Source   string
	LoggedAt time.Time
}

// NewNutritionEntry creates an entry with generated ID and current log time.
func NewNutritionEntry(mealType, mealName string, mealTime time.Time) *NutritionEntry {
	return &NutritionEntry{
		ID:       uuid.New(),
		MealTime: mealTime,
		MealType: mealType,
		MealName: mealName,
		Source:   "cli",
		LoggedAt: time.Now(),
	}
}

// ABOUTME: CLI commands for the manual nutrition log.
// ABOUTME: Supports add, list, and a per-day macro summary.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/db"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var (
	nutritionAt       string
	nutritionName     string
	nutritionCalories float64
	nutritionProtein  float64
	nutritionCarbs    float64
	nutritionFat      float64
	nutritionNotes    string
	nutritionLimit    int
	nutritionDays     int
)

var nutritionCmd = &cobra.Command{
	Use:     "nutrition",
	Aliases: []string{"n"},
	Short:   "Log and summarize meals",
	Long: `Track meals with macronutrient totals alongside the imported health data.

EXAMPLES:

  vitals nutrition add dinner --name "Chicken stir fry" --calories 520 --protein 48
  vitals nutrition list
  vitals nutrition summary --days 7`,
}

var nutritionAddCmd = &cobra.Command{
	Use:   "add <meal-type>",
	Short: "Log a meal (breakfast, lunch, dinner, snack)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealTime := time.Now()
		if nutritionAt != "" {
			t, err := parseUserTime(nutritionAt)
			if err != nil {
				return err
			}
			mealTime = t
		}

		e := models.NewNutritionEntry(args[0], nutritionName, mealTime)
		if cmd.Flags().Changed("calories") {
			e.Calories = &nutritionCalories
		}
		if cmd.Flags().Changed("protein") {
			e.ProteinG = &nutritionProtein
		}
		if cmd.Flags().Changed("carbs") {
			e.CarbsG = &nutritionCarbs
		}
		if cmd.Flags().Changed("fat") {
			e.FatG = &nutritionFat
		}
		if nutritionNotes != "" {
			e.Notes = &nutritionNotes
		}

		if err := db.LogNutrition(dbConn, e); err != nil {
			return err
		}

		color.Green("✓ Logged %s", args[0])
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(e.ID.String()[:8]), e.MealName)
		return nil
	},
}

var nutritionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := db.ListNutrition(dbConn, nutritionLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No meals logged.")
			return nil
		}

		for _, e := range entries {
			cal := "-"
			if e.Calories != nil {
				cal = fmt.Sprintf("%.0f kcal", *e.Calories)
			}
			fmt.Printf("  %s  %-9s  %-30s %s\n",
				e.MealTime.Format("2006-01-02 15:04"), e.MealType, e.MealName, cal)
		}
		return nil
	},
}

var nutritionSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-day macro totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := db.NutritionSummary(dbConn, nutritionDays)
		if err != nil {
			return err
		}
		if len(days) == 0 {
			fmt.Println("No meals logged in that window.")
			return nil
		}

		color.New(color.Bold).Printf("%-12s %8s %8s %8s %8s %6s\n",
			"DATE", "KCAL", "PROT", "CARBS", "FAT", "MEALS")
		for _, d := range days {
			fmt.Printf("%-12s %8.0f %7.0fg %7.0fg %7.0fg %6d\n",
				d.Date, d.Calories, d.ProteinG, d.CarbsG, d.FatG, d.Meals)
		}
		return nil
	},
}

func init() {
	nutritionAddCmd.Flags().StringVar(&nutritionAt, "at", "", "Meal time (defaults to now)")
	nutritionAddCmd.Flags().StringVar(&nutritionName, "name", "", "Meal name")
	nutritionAddCmd.Flags().Float64Var(&nutritionCalories, "calories", 0, "Calories (kcal)")
	nutritionAddCmd.Flags().Float64Var(&nutritionProtein, "protein", 0, "Protein (g)")
	nutritionAddCmd.Flags().Float64Var(&nutritionCarbs, "carbs", 0, "Carbohydrates (g)")
	nutritionAddCmd.Flags().Float64Var(&nutritionFat, "fat", 0, "Fat (g)")
	nutritionAddCmd.Flags().StringVar(&nutritionNotes, "notes", "", "Notes")
	nutritionListCmd.Flags().IntVarP(&nutritionLimit, "limit", "n", 20, "Max entries to show")
	nutritionSummaryCmd.Flags().IntVar(&nutritionDays, "days", 7, "Window in days")

	nutritionCmd.AddCommand(nutritionAddCmd)
	nutritionCmd.AddCommand(nutritionListCmd)
	nutritionCmd.AddCommand(nutritionSummaryCmd)
}

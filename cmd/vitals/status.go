// ABOUTME: CLI command summarizing the fact store.
// ABOUTME: Row counts per table plus the most common metrics.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/db"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"s"},
	Short:   "Show store totals and the most common metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		readings, err := db.CountReadings(dbConn)
		if err != nil {
			return err
		}
		workouts, err := db.CountWorkouts(dbConn)
		if err != nil {
			return err
		}
		medications, err := db.CountMedications(dbConn)
		if err != nil {
			return err
		}
		imports, err := db.CountImports(dbConn)
		if err != nil {
			return err
		}

		color.New(color.Bold).Println("Store")
		fmt.Printf("  Database:     %s\n", cfg.GetDBPath())
		fmt.Printf("  Readings:     %d\n", readings)
		fmt.Printf("  Workouts:     %d\n", workouts)
		fmt.Printf("  Medications:  %d\n", medications)
		fmt.Printf("  Files seen:   %d\n", imports)

		top, err := db.TopMetrics(dbConn, models.SourceHealthKit, 10)
		if err != nil {
			return err
		}
		if len(top) > 0 {
			fmt.Println()
			color.New(color.Bold).Println("Top metrics")
			for _, mc := range top {
				fmt.Printf("  %-35s %d\n", mc.Metric, mc.Count)
			}
		}
		return nil
	},
}

// ABOUTME: CLI command for read-only rollup reports over the fact store.
// ABOUTME: Daily/weekly/monthly buckets; SUM for cumulative metrics else AVG.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/db"
	"github.com/spf13/cobra"
)

var (
	reportPeriod string
	reportLimit  int
)

var reportCmd = &cobra.Command{
	Use:     "report <metric>",
	Aliases: []string{"r"},
	Short:   "Show an aggregate rollup for a metric",
	Long: `Show a per-bucket aggregate of a metric. Cumulative metrics (Step Count,
Active Energy, Basal Energy) are summed per bucket; everything else is
averaged.

EXAMPLES:

  vitals report "Resting Heart Rate"
  vitals report "Step Count" --period weekly
  vitals report "Body Mass" --period monthly -n 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric := args[0]

		rows, err := db.Rollup(dbConn, metric, reportPeriod)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Printf("No readings for %q\n", metric)
			return nil
		}

		// Newest buckets last; trim to the requested window.
		if reportLimit > 0 && len(rows) > reportLimit {
			rows = rows[len(rows)-reportLimit:]
		}

		agg := "avg"
		if db.CumulativeMetrics[metric] {
			agg = "sum"
		}
		color.New(color.Bold).Printf("%s (%s per %s bucket)\n", metric, agg, reportPeriod)
		for _, r := range rows {
			fmt.Printf("  %-12s %10.1f\n", r.Bucket, r.Value)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportPeriod, "period", "p", db.PeriodDaily, "Bucket size: daily, weekly, or monthly")
	reportCmd.Flags().IntVarP(&reportLimit, "limit", "n", 14, "Max buckets to show (most recent)")
}

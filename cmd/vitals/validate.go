// ABOUTME: CLI command running data quality validation standalone.
// ABOUTME: Exit code reflects whether any warnings were found.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harperreed/vitals/internal/validate"
	"github.com/spf13/cobra"
)

var validateVerbose bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run data quality checks",
	Long: `Run the data quality checks against the fact store without importing
anything: heart rate range, future timestamps, calendar coverage, and
resting heart rate anomaly detection.

Exits non-zero when any warning is found, so the command can gate cron
notifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := validate.Run(dbConn, time.Now())
		if err != nil {
			return err
		}

		report.Print(os.Stdout, validateVerbose)

		if report.HasIssues() {
			return fmt.Errorf("%d data quality warning(s)", len(report.Warnings))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show info messages in addition to warnings")
}

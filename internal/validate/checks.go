// ABOUTME: Post-import data-quality checks over the readings fact store.
// ABOUTME: Read-only; a failing check adds a warning and never blocks a run.
package validate

import (
	"database/sql"
	"math"
	"time"

	"github.com/harperreed/vitals/internal/db"
)

// Validation thresholds.
const (
	HeartRateMin = 30
	HeartRateMax = 220

	// A day's resting heart rate is anomalous when it deviates from the
	// trailing 7-day average by more than this many bpm.
	restingHRDeviationThreshold = 15
	rollingWindowDays           = 7
	anomalyLookbackDays         = 30

	outlierDetailLimit = 3
	missingDateLimit   = 5
	anomalyReportLimit = 5
)

// Run executes every data-quality check against the store as of now. Checks
// are independent; each failure becomes a warning in the report rather than
// an error, so validation never blocks ingestion.
func Run(database *sql.DB, now time.Time) (*Report, error) {
	report := &Report{}

	if err := checkHeartRateRange(database, report); err != nil {
		return nil, err
	}
	if err := checkFutureTimestamps(database, report, now); err != nil {
		return nil, err
	}
	if err := checkDateCoverage(database, report); err != nil {
		return nil, err
	}
	if err := checkRestingHRAnomalies(database, report, now); err != nil {
		return nil, err
	}

	return report, nil
}

func checkHeartRateRange(database *sql.DB, report *Report) error {
	outliers, err := db.ListHeartRateOutliers(database, HeartRateMin, HeartRateMax, 10)
	if err != nil {
		return err
	}
	if len(outliers) == 0 {
		report.AddInfo("heart rate values within normal range")
		return nil
	}

	report.AddWarning("found %d heart rate readings outside normal range (%d-%d bpm)",
		len(outliers), HeartRateMin, HeartRateMax)
	for i, r := range outliers {
		if i >= outlierDetailLimit {
			report.AddWarning("  ... and %d more", len(outliers)-outlierDetailLimit)
			break
		}
		report.AddWarning("  %s: %s = %.0f bpm",
			r.Timestamp.Format("2006-01-02 15:04"), r.Metric, r.Value)
	}
	return nil
}

func checkFutureTimestamps(database *sql.DB, report *Report, now time.Time) error {
	count, earliest, err := db.CountFutureReadings(database, now)
	if err != nil {
		return err
	}
	if count == 0 {
		report.AddInfo("no future timestamps found")
		return nil
	}
	report.AddWarning("found %d readings with future timestamps (earliest: %s)",
		count, earliest.Format(time.RFC3339))
	return nil
}

func checkDateCoverage(database *sql.DB, report *Report) error {
	dates, err := db.DistinctReadingDates(database)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		report.AddWarning("no data found in database")
		return nil
	}

	first, err := time.Parse("2006-01-02", dates[0])
	if err != nil {
		return err
	}
	last, err := time.Parse("2006-01-02", dates[len(dates)-1])
	if err != nil {
		return err
	}

	expectedDays := int(last.Sub(first).Hours()/24) + 1
	report.AddInfo("date coverage: %s to %s (%d/%d days)",
		dates[0], dates[len(dates)-1], len(dates), expectedDays)

	missing := expectedDays - len(dates)
	if missing <= 0 {
		return nil
	}

	report.AddWarning("missing data for %d day(s) in date range", missing)

	have := make(map[string]bool, len(dates))
	for _, d := range dates {
		have[d] = true
	}
	shown := 0
	for d := first; !d.After(last) && shown < missingDateLimit; d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if !have[key] {
			report.AddWarning("  missing: %s", key)
			shown++
		}
	}
	if missing > missingDateLimit {
		report.AddWarning("  ... and %d more", missing-missingDateLimit)
	}
	return nil
}

type hrAnomaly struct {
	date      string
	dailyAvg  float64
	rolling   float64
	deviation float64
}

func checkRestingHRAnomalies(database *sql.DB, report *Report, now time.Time) error {
	daily, err := db.DailyMetricAverages(database, "Resting Heart Rate")
	if err != nil {
		return err
	}

	lookback := now.AddDate(0, 0, -anomalyLookbackDays).Format("2006-01-02")

	var anomalies []hrAnomaly
	for i, dv := range daily {
		// The rolling baseline is the average of the 7 prior days; days
		// without a full window are skipped.
		if i < rollingWindowDays {
			continue
		}
		if dv.Date < lookback {
			continue
		}
		var sum float64
		for _, prev := range daily[i-rollingWindowDays : i] {
			sum += prev.Value
		}
		rolling := sum / rollingWindowDays
		deviation := math.Abs(dv.Value - rolling)
		if deviation > restingHRDeviationThreshold {
			anomalies = append(anomalies, hrAnomaly{
				date:      dv.Date,
				dailyAvg:  dv.Value,
				rolling:   rolling,
				deviation: deviation,
			})
		}
	}

	if len(anomalies) == 0 {
		report.AddInfo("no resting heart rate anomalies in last %d days", anomalyLookbackDays)
		return nil
	}

	report.AddWarning("found %d day(s) with unusual resting heart rate in last %d days (>%d bpm from %d-day avg)",
		len(anomalies), anomalyLookbackDays, restingHRDeviationThreshold, rollingWindowDays)

	// Most recent first, capped.
	shown := 0
	for i := len(anomalies) - 1; i >= 0 && shown < anomalyReportLimit; i-- {
		a := anomalies[i]
		report.AddWarning("  %s: %.1f bpm (%d-day avg: %.1f bpm, diff: %.1f)",
			a.date, a.dailyAvg, rollingWindowDays, a.rolling, a.deviation)
		shown++
	}
	return nil
}

// ABOUTME: Tests for readings merge and query operations.
// ABOUTME: Covers insert-if-absent semantics and aggregate queries.
package db

import (
	"testing"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts
}

func TestInsertReadingsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	readings := []models.Reading{
		{Timestamp: mustTime(t, "2026-01-01T08:00:00Z"), Metric: "Step Count", Value: 1200, Unit: "count", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T09:00:00Z"), Metric: "Step Count", Value: 800, Unit: "count", Source: "healthkit"},
	}

	added, err := InsertReadings(db, readings)
	if err != nil {
		t.Fatalf("InsertReadings failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 rows added, got %d", added)
	}

	// Second pass with identical keys must be a no-op.
	added, err = InsertReadings(db, readings)
	if err != nil {
		t.Fatalf("second InsertReadings failed: %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 rows added on re-insert, got %d", added)
	}

	count, err := CountReadings(db)
	if err != nil {
		t.Fatalf("CountReadings failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 readings, got %d", count)
	}
}

func TestInsertReadingsNeverOverwrites(t *testing.T) {
	db := setupTestDB(t)

	ts := mustTime(t, "2026-01-01T08:00:00Z")
	first := []models.Reading{{Timestamp: ts, Metric: "Body Mass", Value: 82.5, Unit: "kg", Source: "healthkit"}}
	if _, err := InsertReadings(db, first); err != nil {
		t.Fatalf("InsertReadings failed: %v", err)
	}

	// Same key, different value: must be dropped, not applied.
	conflict := []models.Reading{{Timestamp: ts, Metric: "Body Mass", Value: 99.9, Unit: "kg", Source: "healthkit"}}
	added, err := InsertReadings(db, conflict)
	if err != nil {
		t.Fatalf("conflicting insert failed: %v", err)
	}
	if added != 0 {
		t.Errorf("expected conflicting insert to add 0 rows, got %d", added)
	}

	got, err := LatestReading(db, "Body Mass")
	if err != nil {
		t.Fatalf("LatestReading failed: %v", err)
	}
	if got == nil || got.Value != 82.5 {
		t.Errorf("original value was overwritten: got %+v", got)
	}
}

func TestListHeartRateOutliers(t *testing.T) {
	db := setupTestDB(t)

	readings := []models.Reading{
		{Timestamp: mustTime(t, "2026-01-01T08:00:00Z"), Metric: "Heart Rate", Value: 65, Unit: "bpm", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T09:00:00Z"), Metric: "Heart Rate", Value: 250, Unit: "bpm", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T10:00:00Z"), Metric: "Resting Heart Rate", Value: 20, Unit: "bpm", Source: "healthkit"},
		// HRV is milliseconds; excluded even when out of bpm range
		{Timestamp: mustTime(t, "2026-01-01T11:00:00Z"), Metric: "Heart Rate Variability", Value: 8, Unit: "ms", Source: "healthkit"},
	}
	if _, err := InsertReadings(db, readings); err != nil {
		t.Fatalf("InsertReadings failed: %v", err)
	}

	outliers, err := ListHeartRateOutliers(db, 30, 220, 10)
	if err != nil {
		t.Fatalf("ListHeartRateOutliers failed: %v", err)
	}
	if len(outliers) != 2 {
		t.Fatalf("expected 2 outliers, got %d", len(outliers))
	}
	for _, o := range outliers {
		if o.Metric == "Heart Rate Variability" {
			t.Error("HRV should be excluded from heart rate range check")
		}
	}
}

func TestRollup(t *testing.T) {
	db := setupTestDB(t)

	readings := []models.Reading{
		{Timestamp: mustTime(t, "2026-01-01T08:00:00Z"), Metric: "Step Count", Value: 1000, Unit: "count", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T18:00:00Z"), Metric: "Step Count", Value: 500, Unit: "count", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-02T08:00:00Z"), Metric: "Step Count", Value: 2000, Unit: "count", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T07:00:00Z"), Metric: "Resting Heart Rate", Value: 60, Unit: "bpm", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T22:00:00Z"), Metric: "Resting Heart Rate", Value: 70, Unit: "bpm", Source: "healthkit"},
	}
	if _, err := InsertReadings(db, readings); err != nil {
		t.Fatalf("InsertReadings failed: %v", err)
	}

	// Cumulative metric: summed
	rows, err := Rollup(db, "Step Count", PeriodDaily)
	if err != nil {
		t.Fatalf("Rollup failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(rows))
	}
	if rows[0].Bucket != "2026-01-01" || rows[0].Value != 1500 {
		t.Errorf("expected 2026-01-01 sum 1500, got %s=%v", rows[0].Bucket, rows[0].Value)
	}

	// Point-in-time metric: averaged
	rows, err = Rollup(db, "Resting Heart Rate", PeriodDaily)
	if err != nil {
		t.Fatalf("Rollup failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Value != 65 {
		t.Errorf("expected avg 65, got %+v", rows)
	}

	if _, err := Rollup(db, "Step Count", "hourly"); err == nil {
		t.Error("expected error for unknown rollup period")
	}
}

func TestDistinctReadingDates(t *testing.T) {
	db := setupTestDB(t)

	readings := []models.Reading{
		{Timestamp: mustTime(t, "2026-01-02T08:00:00Z"), Metric: "Step Count", Value: 1, Unit: "count", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T08:00:00Z"), Metric: "Step Count", Value: 1, Unit: "count", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T09:00:00Z"), Metric: "Step Count", Value: 2, Unit: "count", Source: "healthkit"},
	}
	if _, err := InsertReadings(db, readings); err != nil {
		t.Fatalf("InsertReadings failed: %v", err)
	}

	dates, err := DistinctReadingDates(db)
	if err != nil {
		t.Fatalf("DistinctReadingDates failed: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2026-01-01" || dates[1] != "2026-01-02" {
		t.Errorf("unexpected dates: %v", dates)
	}
}

func TestCountFutureReadings(t *testing.T) {
	db := setupTestDB(t)

	now := mustTime(t, "2026-01-10T12:00:00Z")
	readings := []models.Reading{
		{Timestamp: mustTime(t, "2026-01-09T08:00:00Z"), Metric: "Heart Rate", Value: 60, Unit: "bpm", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-11T08:00:00Z"), Metric: "Heart Rate", Value: 61, Unit: "bpm", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-12T08:00:00Z"), Metric: "Heart Rate", Value: 62, Unit: "bpm", Source: "healthkit"},
	}
	if _, err := InsertReadings(db, readings); err != nil {
		t.Fatalf("InsertReadings failed: %v", err)
	}

	count, earliest, err := CountFutureReadings(db, now)
	if err != nil {
		t.Fatalf("CountFutureReadings failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 future readings, got %d", count)
	}
	if earliest == nil || !earliest.Equal(mustTime(t, "2026-01-11T08:00:00Z")) {
		t.Errorf("unexpected earliest future timestamp: %v", earliest)
	}
}

func TestDailyMetricAverages(t *testing.T) {
	db := setupTestDB(t)

	readings := []models.Reading{
		{Timestamp: mustTime(t, "2026-01-01T07:00:00Z"), Metric: "Resting Heart Rate", Value: 58, Unit: "bpm", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-01T21:00:00Z"), Metric: "Resting Heart Rate", Value: 62, Unit: "bpm", Source: "healthkit"},
		{Timestamp: mustTime(t, "2026-01-02T07:00:00Z"), Metric: "Resting Heart Rate", Value: 66, Unit: "bpm", Source: "healthkit"},
	}
	if _, err := InsertReadings(db, readings); err != nil {
		t.Fatalf("InsertReadings failed: %v", err)
	}

	daily, err := DailyMetricAverages(db, "Resting Heart Rate")
	if err != nil {
		t.Fatalf("DailyMetricAverages failed: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("expected 2 days, got %d", len(daily))
	}
	if daily[0].Date != "2026-01-01" || daily[0].Value != 60 {
		t.Errorf("expected 2026-01-01 avg 60, got %+v", daily[0])
	}
}

// ABOUTME: Tests for the cycle tracking normalizer.
// ABOUTME: Verifies category scalar mapping and raw label preservation.
package ingest

import (
	"testing"

	"github.com/harperreed/vitals/internal/models"
)

func TestCycleValue(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"Unspecified", 0},
		{"None", 0},
		{"No", 0},
		{"Light", 1},
		{"Yes", 1},
		{"Medium", 2},
		{"Heavy", 3},
		{"Spotting", 0}, // unmapped label
		{"2.5", 2.5},    // numeric passthrough
	}
	for _, tc := range cases {
		if got := CycleValue(tc.raw); got != tc.want {
			t.Errorf("CycleValue(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeCycle(t *testing.T) {
	table := &RawTable{
		Filename: "CycleTracking-test.csv",
		Headers:  []string{"Start", "Data", "Value"},
		Rows: [][]string{
			{"2026-01-10", "Menstruation", "Heavy"},
			{"2026-01-14", "Spotting", "Spotting"},
			{"2026-01-15", "Menstruation", ""},
		},
	}

	readings, err := NormalizeCycle(table)
	if err != nil {
		t.Fatalf("NormalizeCycle failed: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}

	heavy := readings[0]
	if heavy.Metric != "Cycle Tracking - Menstruation" {
		t.Errorf("unexpected metric %q", heavy.Metric)
	}
	if heavy.Value != 3 {
		t.Errorf("expected Heavy to map to 3, got %v", heavy.Value)
	}
	if heavy.Unit != "Heavy" {
		t.Errorf("raw label not preserved in unit: %q", heavy.Unit)
	}
	if heavy.Source != models.SourceCycleTracking {
		t.Errorf("unexpected source %q", heavy.Source)
	}

	spotting := readings[1]
	if spotting.Value != 0 || spotting.Unit != "Spotting" {
		t.Errorf("unmapped label should store 0 with label in unit: %+v", spotting)
	}
}

func TestNormalizeCycleMissingColumns(t *testing.T) {
	table := &RawTable{
		Filename: "CycleTracking-test.csv",
		Headers:  []string{"Start", "Data"},
		Rows:     [][]string{{"2026-01-10", "Menstruation"}},
	}
	if _, err := NormalizeCycle(table); err == nil {
		t.Error("expected structural error for missing Value column")
	}
}

// ABOUTME: Tests for the medications normalizer.
// ABOUTME: Covers archived exclusion and UTC timestamp normalization.
package ingest

import (
	"testing"
	"time"
)

func TestNormalizeMedications(t *testing.T) {
	table := &RawTable{
		Filename: "Medications-test.csv",
		Headers:  []string{"Date", "Medication", "Dosage", "Unit", "Status", "Archived"},
		Rows: [][]string{
			{"2026-01-05 08:00:00 -0600", "Lisinopril", "10", "mg", "Taken", "No"},
			{"2026-01-05 20:00:00 -0600", "Lisinopril", "10", "mg", "Taken", "Yes"},
			{"2026-01-06 08:00:00 -0600", "Metformin", "", "", "Skipped", ""},
			{"", "Metformin", "", "", "", ""},
		},
	}

	events, err := NormalizeMedications(table)
	if err != nil {
		t.Fatalf("NormalizeMedications failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events (archived and dateless dropped), got %d", len(events))
	}

	first := events[0]
	if first.Medication != "Lisinopril" || first.Status != "Taken" {
		t.Errorf("unexpected first event: %+v", first)
	}
	if first.Dosage == nil || *first.Dosage != 10 {
		t.Errorf("unexpected dosage: %v", first.Dosage)
	}
	if first.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp not normalized to UTC: %v", first.Timestamp)
	}
	// 08:00 -0600 is 14:00 UTC.
	if first.Timestamp.Hour() != 14 {
		t.Errorf("expected 14:00 UTC, got %v", first.Timestamp)
	}

	if events[1].Dosage != nil {
		t.Errorf("expected nil dosage on sparse row, got %v", *events[1].Dosage)
	}
}

func TestNormalizeMedicationsMissingColumns(t *testing.T) {
	table := &RawTable{
		Filename: "Medications-test.csv",
		Headers:  []string{"Date", "Drug"},
		Rows:     [][]string{{"2026-01-05", "Lisinopril"}},
	}
	if _, err := NormalizeMedications(table); err == nil {
		t.Error("expected structural error for missing Medication column")
	}
}

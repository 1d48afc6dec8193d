// ABOUTME: Tests for medication merge operations.
// ABOUTME: Validates insert-if-absent on the (timestamp, medication) key.
package db

import (
	"testing"

	"github.com/harperreed/vitals/internal/models"
)

func TestInsertMedicationsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	dosage := 10.0
	events := []models.MedicationEvent{
		{
			Timestamp:  mustTime(t, "2026-01-05T08:00:00Z"),
			Medication: "Lisinopril",
			Dosage:     &dosage,
			Unit:       "mg",
			Status:     "Taken",
		},
		{
			Timestamp:  mustTime(t, "2026-01-05T20:00:00Z"),
			Medication: "Lisinopril",
		},
	}

	added, err := InsertMedications(db, events)
	if err != nil {
		t.Fatalf("InsertMedications failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 events added, got %d", added)
	}

	added, err = InsertMedications(db, events)
	if err != nil {
		t.Fatalf("second InsertMedications failed: %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 on re-insert, got %d", added)
	}
}

func TestListMedications(t *testing.T) {
	db := setupTestDB(t)

	events := []models.MedicationEvent{
		{Timestamp: mustTime(t, "2026-01-05T08:00:00Z"), Medication: "Lisinopril"},
		{Timestamp: mustTime(t, "2026-01-06T08:00:00Z"), Medication: "Metformin"},
	}
	if _, err := InsertMedications(db, events); err != nil {
		t.Fatalf("InsertMedications failed: %v", err)
	}

	all, err := ListMedications(db, "", 10)
	if err != nil {
		t.Fatalf("ListMedications failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 events, got %d", len(all))
	}

	one, err := ListMedications(db, "Metformin", 10)
	if err != nil {
		t.Fatalf("ListMedications by name failed: %v", err)
	}
	if len(one) != 1 || one[0].Medication != "Metformin" {
		t.Errorf("unexpected filtered result: %+v", one)
	}
}

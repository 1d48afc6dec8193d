// ABOUTME: MedicationEvent model for exported dose logs.
// ABOUTME: Unique per (Timestamp, Medication); archived rows never reach here.
package models

import "time"

// MedicationEvent is one dose event from a Medications export. Timestamps are
// normalized to UTC during import so events compare cleanly across exports
// taken in different zones.
type MedicationEvent struct {
	Timestamp       time.Time
	ScheduledAt     *time.Time
	Medication      string
	Dosage          *float64
	ScheduledDosage *float64
	Unit            string
	Status          string
}

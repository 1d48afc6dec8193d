// ABOUTME: Medications normalizer, one row per dose event.
// ABOUTME: Archived rows are excluded; timestamps normalize to UTC.
package ingest

import (
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// NormalizeMedications transforms a Medications export into dose events.
// Date and Medication columns are structural requirements. Rows flagged
// Archived=Yes are excluded before normalization. Rows missing a timestamp
// or medication name are dropped silently; sparse optional fields are
// expected in this export. All timestamps are normalized to UTC.
func NormalizeMedications(t *RawTable) ([]models.MedicationEvent, error) {
	dateCol := t.Col("Date")
	medCol := t.Col("Medication")
	if dateCol < 0 || medCol < 0 {
		return nil, fmt.Errorf("%s: missing required Date/Medication columns", t.Filename)
	}

	archivedCol := t.Col("Archived")
	scheduledCol := t.Col("Scheduled Date")
	dosageCol := t.Col("Dosage")
	scheduledDosageCol := t.Col("Scheduled Dosage")
	unitCol := t.Col("Unit")
	statusCol := t.Col("Status")

	var events []models.MedicationEvent
	for _, row := range t.Rows {
		if t.Get(row, archivedCol) == "Yes" {
			continue
		}

		medication := t.Get(row, medCol)
		dateRaw := t.Get(row, dateCol)
		if medication == "" || dateRaw == "" {
			continue
		}
		ts, err := parseTimestamp(dateRaw)
		if err != nil {
			continue
		}

		var scheduled *time.Time
		if s, err := parseTimestamp(t.Get(row, scheduledCol)); err == nil {
			utc := s.UTC()
			scheduled = &utc
		}

		events = append(events, models.MedicationEvent{
			Timestamp:       ts.UTC(),
			ScheduledAt:     scheduled,
			Medication:      medication,
			Dosage:          parseFloatPtr(t.Get(row, dosageCol)),
			ScheduledDosage: parseFloatPtr(t.Get(row, scheduledDosageCol)),
			Unit:            t.Get(row, unitCol),
			Status:          t.Get(row, statusCol),
		})
	}

	return events, nil
}

// ABOUTME: Glucose sync: pulls LibreLinkUp readings into the fact store.
// ABOUTME: Same insert-if-absent merge as file imports; no ledger involved.
package libre

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/vitals/internal/db"
	"github.com/harperreed/vitals/internal/models"
)

// Glucose metric names by fetch mode. Scanned (logbook) and historic (graph)
// readings are distinct metrics so the two feeds never collide on key.
const (
	MetricScan     = "Glucose (Scan)"
	MetricHistoric = "Glucose (Historic)"
)

// SyncOptions control one sync pass.
type SyncOptions struct {
	// UseGraph fetches the 12-hour graph instead of the ~2-week logbook.
	UseGraph bool
	// DryRun fetches and reports but writes nothing.
	DryRun bool
}

// SyncResult summarizes one sync pass.
type SyncResult struct {
	Patient  string
	Fetched  int
	Inserted int
	DryRun   bool
}

// Sync fetches glucose readings for the account's first connection and merges
// them into the fact store with source "libre". This integration bypasses the
// file ledger entirely; idempotency comes from the insert-if-absent contract
// on (timestamp, metric, source).
func Sync(ctx context.Context, database *sql.DB, client *Client, opts SyncOptions) (*SyncResult, error) {
	patients, err := client.Connections(ctx)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, fmt.Errorf("no patients found in LibreLinkUp account")
	}
	patient := patients[0]

	var readings []Reading
	metric := MetricScan
	if opts.UseGraph {
		metric = MetricHistoric
		readings, err = client.Graph(ctx, patient.PatientID)
	} else {
		readings, err = client.Logbook(ctx, patient.PatientID)
	}
	if err != nil {
		return nil, err
	}

	result := &SyncResult{
		Patient: fmt.Sprintf("%s %s", patient.FirstName, patient.LastName),
		Fetched: len(readings),
		DryRun:  opts.DryRun,
	}
	if opts.DryRun || len(readings) == 0 {
		return result, nil
	}

	facts := make([]models.Reading, len(readings))
	for i, r := range readings {
		facts[i] = models.Reading{
			Timestamp: r.Timestamp,
			Metric:    metric,
			Value:     r.Value,
			Unit:      "mg/dL",
			Source:    models.SourceLibre,
		}
	}

	inserted, err := db.InsertReadings(database, facts)
	if err != nil {
		return nil, fmt.Errorf("failed to merge glucose readings: %w", err)
	}
	result.Inserted = inserted
	return result, nil
}

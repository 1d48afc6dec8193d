// ABOUTME: Tests for the glucose sync flow into the fact store.
// ABOUTME: Verifies merge idempotence, metric routing, and dry runs.
package libre

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/harperreed/vitals/internal/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSyncLogbook(t *testing.T) {
	database := setupTestDB(t)
	c := loggedInClient(t)

	res, err := Sync(context.Background(), database, c, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if res.Patient != "Ada L" {
		t.Errorf("unexpected patient %q", res.Patient)
	}
	if res.Fetched != 2 || res.Inserted != 2 {
		t.Errorf("unexpected counts: %+v", res)
	}

	readings, err := db.ListReadings(database, MetricScan, 10)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 stored readings, got %d", len(readings))
	}
	if readings[0].Unit != "mg/dL" || readings[0].Source != "libre" {
		t.Errorf("unexpected reading: %+v", readings[0])
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	database := setupTestDB(t)
	c := loggedInClient(t)

	if _, err := Sync(context.Background(), database, c, SyncOptions{}); err != nil {
		t.Fatalf("first Sync failed: %v", err)
	}
	res, err := Sync(context.Background(), database, c, SyncOptions{})
	if err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if res.Fetched != 2 || res.Inserted != 0 {
		t.Errorf("expected re-sync to insert nothing: %+v", res)
	}
}

func TestSyncGraphUsesHistoricMetric(t *testing.T) {
	database := setupTestDB(t)
	c := loggedInClient(t)

	res, err := Sync(context.Background(), database, c, SyncOptions{UseGraph: true})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if res.Fetched != 1 || res.Inserted != 1 {
		t.Errorf("unexpected counts: %+v", res)
	}

	readings, err := db.ListReadings(database, MetricHistoric, 10)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 1 {
		t.Errorf("expected graph reading under historic metric, got %d", len(readings))
	}
}

func TestSyncDryRun(t *testing.T) {
	database := setupTestDB(t)
	c := loggedInClient(t)

	res, err := Sync(context.Background(), database, c, SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if !res.DryRun || res.Fetched != 2 || res.Inserted != 0 {
		t.Errorf("unexpected result: %+v", res)
	}

	n, err := db.CountReadings(database)
	if err != nil {
		t.Fatalf("CountReadings failed: %v", err)
	}
	if n != 0 {
		t.Errorf("dry run must write nothing, got %d readings", n)
	}
}

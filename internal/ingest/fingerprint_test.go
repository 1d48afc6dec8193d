// ABOUTME: Tests for content fingerprinting.
// ABOUTME: Covers determinism, sensitivity to single-byte edits, and errors.
package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestHashFileDeterministic(t *testing.T) {
	path := writeTestFile(t, "export.csv", "Date/Time,Steps\n2026-01-01,100\n")

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("second HashFile failed: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hash not deterministic: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestHashFileDetectsChange(t *testing.T) {
	a := writeTestFile(t, "a.csv", "Date/Time,Steps\n2026-01-01,100\n")
	b := writeTestFile(t, "b.csv", "Date/Time,Steps\n2026-01-01,101\n")

	ha, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	hb, err := HashFile(b)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if ha == hb {
		t.Error("one-byte difference produced identical hashes")
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

// ABOUTME: Schema classification, routing filenames to importers by prefix.
// ABOUTME: Closed SchemaKind enum with an explicit Unknown fallback.
package ingest

import "strings"

// SchemaKind identifies which importer handles a file.
type SchemaKind int

const (
	// KindUnknown is the fallback for unrecognized prefixes. Unknown files
	// are still attempted with the generic metrics importer so an
	// unexpected-but-valid export is not silently dropped; the attempt is
	// logged and fails loudly if the Date/Time column is absent.
	KindUnknown SchemaKind = iota
	KindGenericMetrics
	KindWorkouts
	KindMedications
	KindCycleTracking
	// KindGlucose marks glucose exports, which are excluded from file
	// ingestion entirely; the libre sync integration owns that data.
	KindGlucose
)

// String returns the source tag used in the ledger for this kind.
func (k SchemaKind) String() string {
	switch k {
	case KindGenericMetrics:
		return "healthkit"
	case KindWorkouts:
		return "workouts"
	case KindMedications:
		return "medications"
	case KindCycleTracking:
		return "cycletracking"
	case KindGlucose:
		return "glucose"
	default:
		return "unknown"
	}
}

// Classify maps a filename to a SchemaKind using the export naming
// convention: Medications-*, Workouts-*, CycleTracking-*, HealthMetrics-*.
// Glucose exports (any filename mentioning glucose) are excluded from file
// ingestion. Everything else is Unknown.
func Classify(filename string) SchemaKind {
	switch {
	case strings.HasPrefix(filename, "Medications-"):
		return KindMedications
	case strings.HasPrefix(filename, "Workouts-"):
		return KindWorkouts
	case strings.HasPrefix(filename, "CycleTracking-"):
		return KindCycleTracking
	case strings.HasPrefix(filename, "HealthMetrics-"):
		return KindGenericMetrics
	case strings.Contains(strings.ToLower(filename), "glucose"):
		return KindGlucose
	default:
		return KindUnknown
	}
}

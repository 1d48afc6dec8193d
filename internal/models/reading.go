// ABOUTME: Reading model, the canonical long-form health fact.
// ABOUTME: Identity is the (timestamp, metric, source) triple.
package models

import "time"

// Source tags identify where a reading came from. The tag is part of the
// reading's identity, so the same metric from two sources never collides.
const (
	SourceHealthKit     = "healthkit"
	SourceCycleTracking = "cycletracking"
	SourceLibre         = "libre"
)

// Reading is one observed metric value at a point in time.
type Reading struct {
	Timestamp time.Time
	Metric    string
	Value     float64
	Unit      string
	Source    string
}

// Key returns the reading's uniqueness key, matching the fact store's
// primary key. Timestamps are normalized to UTC so the same instant never
// yields two keys.
func (r Reading) Key() string {
	return r.Timestamp.UTC().Format(time.RFC3339) + "|" + r.Metric + "|" + r.Source
}

// ABOUTME: Cycle tracking normalizer for (Start, Data, Value) triples.
// ABOUTME: Category labels map to scalars; the label survives in the unit.
package ingest

import (
	"fmt"
	"strconv"

	"github.com/harperreed/vitals/internal/models"
)

// cycleCategoryValues maps the export's category labels to scalars so text
// values can live in the numeric fact store. Labels not in this table store
// as 0; the original label is always preserved in the unit field, so a
// "known none" and an unmapped label remain distinguishable downstream.
var cycleCategoryValues = map[string]float64{
	"Unspecified": 0,
	"None":        0,
	"No":          0,
	"Light":       1,
	"Yes":         1,
	"Medium":      2,
	"Heavy":       3,
}

// CycleValue converts a cycle tracking value cell to its stored scalar.
// Numeric cells pass through; category labels go through the fixed table.
func CycleValue(raw string) float64 {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return cycleCategoryValues[raw]
}

// NormalizeCycle transforms a CycleTracking export into readings. Start,
// Data, and Value columns are structural requirements. The metric name is
// synthesized as "Cycle Tracking - {Data}". Rows missing any of the three
// fields are dropped. The raw value string is stored verbatim in the unit
// field so no information is lost by the scalar mapping.
func NormalizeCycle(t *RawTable) ([]models.Reading, error) {
	startCol := t.Col("Start")
	dataCol := t.Col("Data")
	valueCol := t.Col("Value")
	if startCol < 0 || dataCol < 0 || valueCol < 0 {
		return nil, fmt.Errorf("%s: missing required Start/Data/Value columns", t.Filename)
	}

	var readings []models.Reading
	for _, row := range t.Rows {
		startRaw := t.Get(row, startCol)
		data := t.Get(row, dataCol)
		valueRaw := t.Get(row, valueCol)
		if startRaw == "" || data == "" || valueRaw == "" {
			continue
		}
		start, err := parseTimestamp(startRaw)
		if err != nil {
			continue
		}

		readings = append(readings, models.Reading{
			Timestamp: start,
			Metric:    "Cycle Tracking - " + data,
			Value:     CycleValue(valueRaw),
			Unit:      valueRaw,
			Source:    models.SourceCycleTracking,
		})
	}

	return readings, nil
}

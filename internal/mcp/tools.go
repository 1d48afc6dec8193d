// ABOUTME: MCP tool implementations over the vitals fact store.
// ABOUTME: Read-only queries: readings, rollups, workouts, medications, quality.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/vitals/internal/db"
	"github.com/harperreed/vitals/internal/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "query_readings",
		Description: "List recent health readings, optionally filtered by metric name",
	}, s.handleQueryReadings)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_rollup",
		Description: "Aggregate a metric per day, week, or month (SUM for cumulative metrics like Step Count, AVG otherwise)",
	}, s.handleRollup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "latest_reading",
		Description: "Get the most recent reading for a metric",
	}, s.handleLatestReading)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, optionally filtered by type",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_medications",
		Description: "List recent medication dose events, optionally filtered by name",
	}, s.handleListMedications)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "data_quality_report",
		Description: "Run the data quality validation checks and return warnings",
	}, s.handleDataQuality)
}

// Tool input/output types

type queryReadingsInput struct {
	Metric string `json:"metric,omitempty" jsonschema:"description=Filter by metric name (e.g. Resting Heart Rate)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type readingOutput struct {
	Timestamp string  `json:"timestamp"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Source    string  `json:"source"`
}

type readingsOutput struct {
	Readings []readingOutput `json:"readings"`
}

type rollupInput struct {
	Metric string `json:"metric" jsonschema:"description=Metric name to aggregate,required"`
	Period string `json:"period,omitempty" jsonschema:"description=daily (default), weekly, or monthly"`
}

type rollupOutput struct {
	Metric  string         `json:"metric"`
	Period  string         `json:"period"`
	Buckets []rollupBucket `json:"buckets"`
}

type rollupBucket struct {
	Bucket string  `json:"bucket"`
	Value  float64 `json:"value"`
}

type latestReadingInput struct {
	Metric string `json:"metric" jsonschema:"description=Metric name,required"`
}

type listWorkoutsInput struct {
	WorkoutType string `json:"workout_type,omitempty" jsonschema:"description=Filter by workout type"`
	Limit       int    `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type workoutOutput struct {
	StartTime       string   `json:"start_time"`
	WorkoutType     string   `json:"workout_type"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	ActiveEnergy    *float64 `json:"active_energy_kcal,omitempty"`
	AvgHeartRate    *float64 `json:"avg_heart_rate,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

type workoutsOutput struct {
	Workouts []workoutOutput `json:"workouts"`
}

type listMedicationsInput struct {
	Medication string `json:"medication,omitempty" jsonschema:"description=Filter by medication name"`
	Limit      int    `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type medicationOutput struct {
	Timestamp  string   `json:"timestamp"`
	Medication string   `json:"medication"`
	Dosage     *float64 `json:"dosage,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Status     string   `json:"status,omitempty"`
}

type medicationsOutput struct {
	Medications []medicationOutput `json:"medications"`
}

type dataQualityInput struct{}

type dataQualityOutput struct {
	HasIssues bool     `json:"has_issues"`
	Warnings  []string `json:"warnings"`
	Info      []string `json:"info"`
}

// Tool handlers

func (s *Server) handleQueryReadings(ctx context.Context, req *mcp.CallToolRequest, input queryReadingsInput) (*mcp.CallToolResult, readingsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	readings, err := db.ListReadings(s.db, input.Metric, limit)
	if err != nil {
		return nil, readingsOutput{}, err
	}

	out := readingsOutput{Readings: make([]readingOutput, len(readings))}
	for i, r := range readings {
		out.Readings[i] = readingOutput{
			Timestamp: r.Timestamp.Format(time.RFC3339),
			Metric:    r.Metric,
			Value:     r.Value,
			Unit:      r.Unit,
			Source:    r.Source,
		}
	}
	return nil, out, nil
}

func (s *Server) handleRollup(ctx context.Context, req *mcp.CallToolRequest, input rollupInput) (*mcp.CallToolResult, rollupOutput, error) {
	period := input.Period
	if period == "" {
		period = db.PeriodDaily
	}
	rows, err := db.Rollup(s.db, input.Metric, period)
	if err != nil {
		return nil, rollupOutput{}, err
	}

	out := rollupOutput{Metric: input.Metric, Period: period}
	for _, row := range rows {
		out.Buckets = append(out.Buckets, rollupBucket{Bucket: row.Bucket, Value: row.Value})
	}
	return nil, out, nil
}

func (s *Server) handleLatestReading(ctx context.Context, req *mcp.CallToolRequest, input latestReadingInput) (*mcp.CallToolResult, readingsOutput, error) {
	r, err := db.LatestReading(s.db, input.Metric)
	if err != nil {
		return nil, readingsOutput{}, err
	}
	out := readingsOutput{}
	if r != nil {
		out.Readings = []readingOutput{{
			Timestamp: r.Timestamp.Format(time.RFC3339),
			Metric:    r.Metric,
			Value:     r.Value,
			Unit:      r.Unit,
			Source:    r.Source,
		}}
	}
	return nil, out, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, workoutsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	workouts, err := db.ListWorkouts(s.db, input.WorkoutType, limit)
	if err != nil {
		return nil, workoutsOutput{}, err
	}

	out := workoutsOutput{Workouts: make([]workoutOutput, len(workouts))}
	for i, w := range workouts {
		out.Workouts[i] = workoutOutput{
			StartTime:       w.StartTime.Format(time.RFC3339),
			WorkoutType:     w.WorkoutType,
			DurationSeconds: w.DurationSeconds,
			ActiveEnergy:    w.ActiveEnergyKcal,
			AvgHeartRate:    w.AvgHeartRate,
			DistanceKm:      w.DistanceKm,
		}
	}
	return nil, out, nil
}

func (s *Server) handleListMedications(ctx context.Context, req *mcp.CallToolRequest, input listMedicationsInput) (*mcp.CallToolResult, medicationsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	events, err := db.ListMedications(s.db, input.Medication, limit)
	if err != nil {
		return nil, medicationsOutput{}, err
	}

	out := medicationsOutput{Medications: make([]medicationOutput, len(events))}
	for i, e := range events {
		out.Medications[i] = medicationOutput{
			Timestamp:  e.Timestamp.Format(time.RFC3339),
			Medication: e.Medication,
			Dosage:     e.Dosage,
			Unit:       e.Unit,
			Status:     e.Status,
		}
	}
	return nil, out, nil
}

func (s *Server) handleDataQuality(ctx context.Context, req *mcp.CallToolRequest, input dataQualityInput) (*mcp.CallToolResult, dataQualityOutput, error) {
	report, err := validate.Run(s.db, time.Now())
	if err != nil {
		return nil, dataQualityOutput{}, err
	}
	return nil, dataQualityOutput{
		HasIssues: report.HasIssues(),
		Warnings:  report.Warnings,
		Info:      report.Info,
	}, nil
}

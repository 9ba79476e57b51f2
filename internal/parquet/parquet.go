// Package parquet provides data structures and functions for exporting
// flowspan analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/flowspan/flowspan/schema"
	"github.com/parquet-go/parquet-go"
)

// IssueCycleRow represents one issue's cycle-time results in a Parquet file.
// This struct maps to the flowspan_issue_cycles database table.
type IssueCycleRow struct {
	// RunID references the parent analysis run (0 for ad-hoc exports)
	RunID int64 `parquet:"run_id,snappy"`

	// IssueKey is the tracker key of the issue
	IssueKey string `parquet:"issue_key,snappy"`

	// Summary is the issue's one-line summary (nullable)
	Summary *string `parquet:"summary,optional,snappy"`

	// DiscoveryStart is the first entry into a discovery status (nullable)
	DiscoveryStart *time.Time `parquet:"discovery_start,optional,snappy"`

	// BuildStart is the first entry into the build status (nullable)
	BuildStart *time.Time `parquet:"build_start,optional,snappy"`

	// BuildEnd is the first completion at or after the build start (nullable)
	BuildEnd *time.Time `parquet:"build_end,optional,snappy"`

	// DiscoveryCalendarWeeks is the wall-clock discovery duration (nullable)
	DiscoveryCalendarWeeks *float64 `parquet:"discovery_calendar_weeks,optional,snappy"`

	// DiscoveryActiveWeeks is the hold-excluded discovery duration (nullable)
	DiscoveryActiveWeeks *float64 `parquet:"discovery_active_weeks,optional,snappy"`

	// DiscoveryOpen is true when the discovery phase had not completed (nullable)
	DiscoveryOpen *bool `parquet:"discovery_open,optional,snappy"`

	// BuildCalendarWeeks is the wall-clock build duration (nullable)
	BuildCalendarWeeks *float64 `parquet:"build_calendar_weeks,optional,snappy"`

	// BuildActiveWeeks is the hold-excluded build duration (nullable)
	BuildActiveWeeks *float64 `parquet:"build_active_weeks,optional,snappy"`

	// BuildOpen is true when the build phase had not completed (nullable)
	BuildOpen *bool `parquet:"build_open,optional,snappy"`
}

// CohortSummaryRow represents one cohort summary in a Parquet file.
// This struct maps to the flowspan_cohort_summaries database table.
type CohortSummaryRow struct {
	// RunID references the parent analysis run (0 for ad-hoc exports)
	RunID int64 `parquet:"run_id,snappy"`

	// Phase is "discovery" or "build"
	Phase string `parquet:"phase,snappy"`

	// Series is "calendar" or "active"
	Series string `parquet:"series,snappy"`

	// Quarter is the cohort label, e.g. "Q3 2025"
	Quarter string `parquet:"quarter,snappy"`

	// Count is the number of completed phases in the cohort
	Count int32 `parquet:"count,snappy"`

	Min    float64 `parquet:"min,snappy"`
	Q1     float64 `parquet:"q1,snappy"`
	Median float64 `parquet:"median,snappy"`
	Q3     float64 `parquet:"q3,snappy"`
	Max    float64 `parquet:"max,snappy"`
}

// IssueCycleRowFromRecord converts a stored record into a Parquet row.
func IssueCycleRowFromRecord(rec schema.IssueCycleRecord) IssueCycleRow {
	row := IssueCycleRow{
		RunID:                  rec.RunID,
		IssueKey:               rec.IssueKey,
		DiscoveryStart:         rec.DiscoveryStart,
		BuildStart:             rec.BuildStart,
		BuildEnd:               rec.BuildEnd,
		DiscoveryCalendarWeeks: rec.DiscoveryCalendarWeeks,
		DiscoveryActiveWeeks:   rec.DiscoveryActiveWeeks,
		DiscoveryOpen:          rec.DiscoveryOpen,
		BuildCalendarWeeks:     rec.BuildCalendarWeeks,
		BuildActiveWeeks:       rec.BuildActiveWeeks,
		BuildOpen:              rec.BuildOpen,
	}
	if rec.Summary != "" {
		row.Summary = &rec.Summary
	}
	return row
}

// IssueCycleRowFromResult converts an in-memory result into a Parquet row.
func IssueCycleRowFromResult(result *schema.IssueResult) IssueCycleRow {
	row := IssueCycleRow{IssueKey: result.Key}
	if result.Summary != "" {
		row.Summary = &result.Summary
	}
	if t := result.Boundaries.DiscoveryStart; !t.IsZero() {
		row.DiscoveryStart = &t
	}
	if t := result.Boundaries.BuildStart; !t.IsZero() {
		row.BuildStart = &t
	}
	if t := result.Boundaries.BuildEnd; !t.IsZero() {
		row.BuildEnd = &t
	}
	if c := result.Discovery; c != nil {
		row.DiscoveryCalendarWeeks = &c.CalendarWeeks
		row.DiscoveryActiveWeeks = &c.ActiveWeeks
		row.DiscoveryOpen = &c.IsOpen
	}
	if c := result.Build; c != nil {
		row.BuildCalendarWeeks = &c.CalendarWeeks
		row.BuildActiveWeeks = &c.ActiveWeeks
		row.BuildOpen = &c.IsOpen
	}
	return row
}

// CohortSummaryRowFromRecord converts a stored record into a Parquet row.
func CohortSummaryRowFromRecord(rec schema.CohortSummaryRecord) CohortSummaryRow {
	return CohortSummaryRow{
		RunID:   rec.RunID,
		Phase:   rec.Phase,
		Series:  rec.Series,
		Quarter: rec.Quarter,
		Count:   int32(rec.Count),
		Min:     rec.Min,
		Q1:      rec.Q1,
		Median:  rec.Median,
		Q3:      rec.Q3,
		Max:     rec.Max,
	}
}

// WriteIssueCyclesParquet writes a slice of IssueCycleRow structs to a Parquet file.
func WriteIssueCyclesParquet(data []IssueCycleRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCohortSummariesParquet writes a slice of CohortSummaryRow structs to a Parquet file.
func WriteCohortSummariesParquet(data []CohortSummaryRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records to a Parquet file using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close explicitly to surface flush errors
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

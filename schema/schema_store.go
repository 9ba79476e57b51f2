package schema

import "time"

// StoreStatus represents the status of the result store.
type StoreStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalIssues     int              `json:"total_issues"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// IssueCycleRecord represents a row from the flowspan_issue_cycles table.
type IssueCycleRecord struct {
	RunID                  int64
	IssueKey               string
	Summary                string
	DiscoveryStart         *time.Time
	BuildStart             *time.Time
	BuildEnd               *time.Time
	DiscoveryCalendarWeeks *float64
	DiscoveryActiveWeeks   *float64
	DiscoveryOpen          *bool
	BuildCalendarWeeks     *float64
	BuildActiveWeeks       *float64
	BuildOpen              *bool
}

// CohortSummaryRecord represents a row from the flowspan_cohort_summaries table.
type CohortSummaryRecord struct {
	RunID   int64
	Phase   string
	Series  string
	Quarter string
	Count   int
	Min     float64
	Q1      float64
	Median  float64
	Q3      float64
	Max     float64
}

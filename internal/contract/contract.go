// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/flowspan/flowspan/schema"
)

// HistoryProvider supplies raw issue histories for a batch. Pagination,
// retries and authentication against the tracker are the provider's problem;
// the engine only consumes the assembled histories.
type HistoryProvider interface {
	// Histories returns the full batch of issue histories to analyze.
	Histories(ctx context.Context) ([]schema.IssueHistory, error)
}

// StoreManager defines the interface for accessing the result store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetResultStore() ResultStore
}

// ResultStore defines the interface for recording analysis runs and reading
// them back for export.
type ResultStore interface {
	// BeginRun creates a new analysis run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalIssues int) error

	// RecordIssueResult stores one issue's cycle-time results.
	RecordIssueResult(runID int64, result schema.IssueResult) error

	// RecordCohortSummary stores one cohort summary row.
	RecordCohortSummary(runID int64, rec schema.CohortSummaryRecord) error

	// ListIssueCycles returns the stored per-issue rows for a run.
	// A runID of 0 selects the most recent run.
	ListIssueCycles(runID int64) ([]schema.IssueCycleRecord, error)

	// ListCohortSummaries returns the stored cohort rows for a run.
	// A runID of 0 selects the most recent run.
	ListCohortSummaries(runID int64) ([]schema.CohortSummaryRecord, error)

	// GetStatus returns status information about the result store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

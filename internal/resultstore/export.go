package resultstore

import (
	"errors"
	"fmt"

	"github.com/flowspan/flowspan/internal/parquet"
)

// ExecuteResultsExport exports stored run data to Parquet files.
// A runID of 0 exports the most recent run.
func ExecuteResultsExport(outputFile string, runID int64) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the result store
	store := Manager.GetResultStore()
	if store == nil {
		return errors.New("result store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no stored results found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)

	// Retrieve the issue cycles for the run
	issueCycles, err := store.ListIssueCycles(runID)
	if err != nil {
		return fmt.Errorf("failed to retrieve issue cycles: %w", err)
	}

	// Retrieve the cohort summaries for the run
	cohortSummaries, err := store.ListCohortSummaries(runID)
	if err != nil {
		return fmt.Errorf("failed to retrieve cohort summaries: %w", err)
	}

	// Convert to Parquet format
	issueRows := make([]parquet.IssueCycleRow, len(issueCycles))
	for i, rec := range issueCycles {
		issueRows[i] = parquet.IssueCycleRowFromRecord(rec)
	}
	cohortRows := make([]parquet.CohortSummaryRow, len(cohortSummaries))
	for i, rec := range cohortSummaries {
		cohortRows[i] = parquet.CohortSummaryRowFromRecord(rec)
	}

	// Write issue cycles to Parquet
	issueCyclesFile := outputFile + ".issue_cycles.parquet"
	if err := parquet.WriteIssueCyclesParquet(issueRows, issueCyclesFile); err != nil {
		return fmt.Errorf("failed to write issue cycles: %w", err)
	}
	fmt.Printf("Exported %d issue cycles to: %s\n", len(issueRows), issueCyclesFile)

	// Write cohort summaries to Parquet
	cohortSummariesFile := outputFile + ".cohort_summaries.parquet"
	if err := parquet.WriteCohortSummariesParquet(cohortRows, cohortSummariesFile); err != nil {
		return fmt.Errorf("failed to write cohort summaries: %w", err)
	}
	fmt.Printf("Exported %d cohort summaries to: %s\n", len(cohortRows), cohortSummariesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}

package core

import (
	"context"
	"time"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/outwriter"
	"github.com/flowspan/flowspan/schema"
)

// ExecutorFunc defines the function signature for executing analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) error

// ExecuteIssues runs the batch analysis and prints the per-issue cycle table,
// ranked by the configured phase's calendar cycle time. It serves as the main
// entry point for the 'issues' command.
func ExecuteIssues(ctx context.Context, cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) error {
	start := time.Now()
	batch, err := AnalyzeIssues(ctx, cfg, provider, mgr)
	if err != nil {
		return err
	}
	ranked := RankIssues(batch.Issues, cfg.Phase, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.WriteIssueResults(ranked, batch.Failures, cfg, duration)
}

// ExecuteCohorts runs the batch analysis and prints quarterly cohort quartile
// summaries for both phases and both duration series.
func ExecuteCohorts(ctx context.Context, cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) error {
	start := time.Now()
	batch, err := AnalyzeIssues(ctx, cfg, provider, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteCohortResults(batch.Cohorts, cfg, duration)
}

// ExecuteAtRisk runs the batch analysis and prints issues whose phase cycle
// exceeds the configured weeks threshold, longest first.
func ExecuteAtRisk(ctx context.Context, cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) error {
	start := time.Now()
	batch, err := AnalyzeIssues(ctx, cfg, provider, mgr)
	if err != nil {
		return err
	}
	flagged := FilterAtRisk(batch.Issues, cfg.Phase, cfg.AtRiskWeeks)
	if len(flagged) > cfg.ResultLimit {
		flagged = flagged[:cfg.ResultLimit]
	}
	duration := time.Since(start)
	return outwriter.WriteIssueResults(flagged, batch.Failures, cfg, duration)
}

// GetIssueResults returns ranked per-issue results for programmatic callers
// such as the MCP server.
func GetIssueResults(ctx context.Context, cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) ([]schema.IssueResult, []schema.IssueFailure, error) {
	batch, err := AnalyzeIssues(ctx, cfg, provider, mgr)
	if err != nil {
		return nil, nil, err
	}
	return RankIssues(batch.Issues, cfg.Phase, cfg.ResultLimit), batch.Failures, nil
}

// GetCohortResults returns cohort summaries for programmatic callers.
func GetCohortResults(ctx context.Context, cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) (map[schema.Phase]map[schema.Series]schema.CohortTable, error) {
	batch, err := AnalyzeIssues(ctx, cfg, provider, mgr)
	if err != nil {
		return nil, err
	}
	return batch.Cohorts, nil
}

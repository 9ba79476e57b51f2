package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/schema"
)

// AnalyzeIssue computes one issue's phase boundaries and cycle-time results
// from its raw history. It is pure: same history and clock in, same result
// out.
func AnalyzeIssue(hist schema.IssueHistory, tax *schema.StatusTaxonomy, now time.Time) (schema.IssueResult, error) {
	intervals, err := BuildTimeline(hist)
	if err != nil {
		return schema.IssueResult{}, fmt.Errorf("issue %s: %w", hist.Key, err)
	}

	boundaries := LocatePhases(intervals, tax)
	result := schema.IssueResult{
		Key:        hist.Key,
		Summary:    hist.Summary,
		Boundaries: boundaries,
	}

	if !boundaries.DiscoveryStart.IsZero() {
		end, open := boundaries.BuildStart, false
		if end.IsZero() {
			end, open = now, true
		}
		cycle := MeasurePhase(intervals, boundaries.DiscoveryStart, end, open, tax.HoldPolicyFor(schema.DiscoveryPhase), now)
		result.Discovery = &cycle
	}

	if !boundaries.BuildStart.IsZero() {
		end, open := boundaries.BuildEnd, false
		if end.IsZero() {
			end, open = now, true
		}
		cycle := MeasurePhase(intervals, boundaries.BuildStart, end, open, tax.HoldPolicyFor(schema.BuildPhase), now)
		result.Build = &cycle
	}

	return result, nil
}

// AnalyzeIssues runs the full batch: per-issue computation fanned out over a
// worker pool, then cohort aggregation behind the barrier. Per-issue failures
// are isolated and reported alongside successes; a partial-success batch is
// the normal case. Only a missing taxonomy aborts the run.
func AnalyzeIssues(ctx context.Context, cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) (*schema.BatchResult, error) {
	if err := cfg.Taxonomy.Validate(); err != nil {
		return nil, err
	}

	histories, err := provider.Histories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load issue histories: %w", err)
	}

	// --- 0. Begin run tracking (if configured) ---
	var runID int64
	store := resultStore(mgr)
	if store != nil {
		var err error
		runID, err = store.BeginRun(time.Now(), cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Per-issue computation (worker pool) ---
	issues, failures := analyzeBatch(cfg, histories)

	// --- 2. Cohort aggregation (after the barrier) ---
	cohorts := AggregateCohorts(issues)

	batch := &schema.BatchResult{
		Issues:   issues,
		Failures: failures,
		Cohorts:  cohorts,
		Now:      cfg.Now,
	}

	// --- 3. Record results and finalize tracking ---
	if store != nil && runID > 0 {
		recordBatch(store, runID, batch)
		if err := store.EndRun(runID, time.Now(), len(issues)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return batch, nil
}

// analyzeBatch processes all issues in parallel using a worker pool. Each
// issue is independent, so cfg.Workers goroutines map over the histories with
// no shared mutable state.
func analyzeBatch(cfg *contract.Config, histories []schema.IssueHistory) ([]schema.IssueResult, []schema.IssueFailure) {
	histCh := make(chan schema.IssueHistory, len(histories))
	resultCh := make(chan schema.IssueResult, len(histories))
	failureCh := make(chan schema.IssueFailure, len(histories))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for hist := range histCh {
				result, err := AnalyzeIssue(hist, &cfg.Taxonomy, cfg.Now)
				if err != nil {
					failureCh <- schema.IssueFailure{Key: hist.Key, Err: err}
					continue
				}
				warnClamped(&result)
				resultCh <- result
			}
		})
	}

	for _, hist := range histories {
		histCh <- hist
	}
	close(histCh)

	wg.Wait()
	close(resultCh)
	close(failureCh)

	issues := make([]schema.IssueResult, 0, len(histories))
	for r := range resultCh {
		issues = append(issues, r)
	}
	var failures []schema.IssueFailure
	for f := range failureCh {
		failures = append(failures, f)
	}

	// Channel drain order is scheduling-dependent; sort for determinism.
	sort.Slice(issues, func(i, j int) bool { return issues[i].Key < issues[j].Key })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Key < failures[j].Key })

	return issues, failures
}

// warnClamped surfaces negative-duration clamps as data-quality warnings.
func warnClamped(result *schema.IssueResult) {
	for _, phase := range schema.AllPhases {
		if cycle := result.Cycle(phase); cycle != nil && cycle.Clamped {
			contract.LogWarn(
				fmt.Sprintf("Negative %s duration clamped to zero for %s", phase, result.Key), nil)
		}
	}
}

// recordBatch stores per-issue results and cohort summaries for a run.
// Storage failures degrade to warnings; the analysis output is unaffected.
func recordBatch(store contract.ResultStore, runID int64, batch *schema.BatchResult) {
	for i := range batch.Issues {
		if err := store.RecordIssueResult(runID, batch.Issues[i]); err != nil {
			contract.LogWarn(fmt.Sprintf("Result tracking failed for %s", batch.Issues[i].Key), err)
		}
	}
	for _, phase := range schema.AllPhases {
		for _, series := range schema.AllSeries {
			table := batch.Cohorts[phase][series]
			for _, q := range schema.SortedQuarters(table) {
				summary := table[q]
				rec := schema.CohortSummaryRecord{
					RunID:   runID,
					Phase:   string(phase),
					Series:  string(series),
					Quarter: q.String(),
					Count:   summary.Count,
					Min:     summary.Min,
					Q1:      summary.Q1,
					Median:  summary.Median,
					Q3:      summary.Q3,
					Max:     summary.Max,
				}
				if err := store.RecordCohortSummary(runID, rec); err != nil {
					contract.LogWarn(fmt.Sprintf("Cohort tracking failed for %s %s %s", phase, series, q), err)
				}
			}
		}
	}
}

// resultStore unwraps the store manager, tolerating a nil manager.
func resultStore(mgr contract.StoreManager) contract.ResultStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetResultStore()
}

package core

import (
	"sort"

	"github.com/flowspan/flowspan/schema"
)

// RankIssues sorts issues by the given phase's calendar cycle time in
// descending order and returns the top 'limit'. Issues without that phase
// sort last, ties break on issue key for stable output.
func RankIssues(issues []schema.IssueResult, phase schema.Phase, limit int) []schema.IssueResult {
	ranked := make([]schema.IssueResult, len(issues))
	copy(ranked, issues)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].Cycle(phase), ranked[j].Cycle(phase)
		switch {
		case a == nil && b == nil:
			return ranked[i].Key < ranked[j].Key
		case a == nil:
			return false
		case b == nil:
			return true
		case a.CalendarWeeks != b.CalendarWeeks:
			return a.CalendarWeeks > b.CalendarWeeks
		default:
			return ranked[i].Key < ranked[j].Key
		}
	})

	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// FilterAtRisk returns the issues whose phase calendar cycle exceeds the
// threshold, longest first. Open phases count: a long-running in-progress
// phase is exactly what the report exists to surface.
func FilterAtRisk(issues []schema.IssueResult, phase schema.Phase, thresholdWeeks float64) []schema.IssueResult {
	var flagged []schema.IssueResult
	for i := range issues {
		if cycle := issues[i].Cycle(phase); cycle != nil && cycle.CalendarWeeks > thresholdWeeks {
			flagged = append(flagged, issues[i])
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		a, b := flagged[i].Cycle(phase), flagged[j].Cycle(phase)
		if a.CalendarWeeks != b.CalendarWeeks {
			return a.CalendarWeeks > b.CalendarWeeks
		}
		return flagged[i].Key < flagged[j].Key
	})
	return flagged
}

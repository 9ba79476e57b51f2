package core

import (
	"testing"

	"github.com/flowspan/flowspan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(issues []schema.IssueResult) []string {
	keys := make([]string, len(issues))
	for i := range issues {
		keys[i] = issues[i].Key
	}
	return keys
}

func withBuildWeeks(key string, calendar float64) schema.IssueResult {
	return schema.IssueResult{Key: key, Build: &schema.CycleTimeResult{CalendarWeeks: calendar}}
}

func TestRankIssues(t *testing.T) {
	issues := []schema.IssueResult{
		withBuildWeeks("FLOW-3", 2.0),
		withBuildWeeks("FLOW-1", 8.0),
		{Key: "FLOW-4"}, // no build phase
		withBuildWeeks("FLOW-2", 8.0),
		withBuildWeeks("FLOW-5", 5.0),
	}

	ranked := RankIssues(issues, schema.BuildPhase, 10)
	assert.Equal(t, []string{"FLOW-1", "FLOW-2", "FLOW-5", "FLOW-3", "FLOW-4"}, keysOf(ranked))

	// Input order is preserved.
	assert.Equal(t, "FLOW-3", issues[0].Key)
}

func TestRankIssuesLimit(t *testing.T) {
	issues := []schema.IssueResult{
		withBuildWeeks("FLOW-1", 3.0),
		withBuildWeeks("FLOW-2", 9.0),
		withBuildWeeks("FLOW-3", 6.0),
	}

	ranked := RankIssues(issues, schema.BuildPhase, 2)
	assert.Equal(t, []string{"FLOW-2", "FLOW-3"}, keysOf(ranked))

	ranked = RankIssues(issues, schema.BuildPhase, 5)
	assert.Len(t, ranked, 3)
}

func TestRankIssuesByDiscovery(t *testing.T) {
	issues := []schema.IssueResult{
		{Key: "FLOW-1", Discovery: &schema.CycleTimeResult{CalendarWeeks: 1.0}, Build: &schema.CycleTimeResult{CalendarWeeks: 9.0}},
		{Key: "FLOW-2", Discovery: &schema.CycleTimeResult{CalendarWeeks: 4.0}},
	}

	ranked := RankIssues(issues, schema.DiscoveryPhase, 10)
	assert.Equal(t, []string{"FLOW-2", "FLOW-1"}, keysOf(ranked))
}

func TestFilterAtRisk(t *testing.T) {
	issues := []schema.IssueResult{
		withBuildWeeks("FLOW-1", 3.9),
		withBuildWeeks("FLOW-2", 4.0), // at the threshold, not over it
		withBuildWeeks("FLOW-3", 7.5),
		{Key: "FLOW-4", Build: &schema.CycleTimeResult{CalendarWeeks: 5.0, IsOpen: true}},
		{Key: "FLOW-5"},
	}

	flagged := FilterAtRisk(issues, schema.BuildPhase, 4.0)
	require.Len(t, flagged, 2)
	assert.Equal(t, []string{"FLOW-3", "FLOW-4"}, keysOf(flagged))
	assert.True(t, flagged[1].Build.IsOpen)
}

func TestFilterAtRiskEmpty(t *testing.T) {
	issues := []schema.IssueResult{withBuildWeeks("FLOW-1", 1.0)}
	assert.Empty(t, FilterAtRisk(issues, schema.BuildPhase, 4.0))
}

package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/flowspan/flowspan/internal/contract"
	mcp_internal "github.com/flowspan/flowspan/internal/mcp"
	"github.com/flowspan/flowspan/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		ResultLimit: 25,
		Workers:     2,
		Phase:       schema.BuildPhase,
		AtRiskWeeks: 4.0,
		Taxonomy: schema.StatusTaxonomy{
			DiscoveryStatuses:  []string{"04 Problem Discovery"},
			BuildStatus:        "06 Build",
			CompletionStatuses: []string{"07 Beta", "08 Live"},
			HoldStatuses:       []string{"01 Inbox"},
		},
	}
}

func writeExportFixture(t *testing.T) string {
	t.Helper()
	fixture := `{
  "issues": [
    {
      "key": "FLOW-1",
      "created_at": "2025-01-06T09:00:00Z",
      "initial_status": "06 Build",
      "events": [
        {"occurred_at": "2025-03-10T09:00:00Z", "field": "status", "from_value": "06 Build", "to_value": "08 Live"}
      ]
    }
  ]
}`
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerHandlers(t *testing.T) {
	t.Run("get_issue_cycles returns ranked results", func(t *testing.T) {
		res := callTool(t, "get_issue_cycles", map[string]any{
			"history_path": writeExportFixture(t),
			"limit":        5.0,
		})

		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"FLOW-1"`)
		assert.Contains(t, text, `"calendar_weeks"`)
	})

	t.Run("get_cohort_summaries returns quarterly tables", func(t *testing.T) {
		res := callTool(t, "get_cohort_summaries", map[string]any{
			"history_path": writeExportFixture(t),
		})

		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"build"`)
		assert.Contains(t, text, `"Q1 2025"`)
	})

	t.Run("get_at_risk_issues flags long cycles", func(t *testing.T) {
		// FLOW-1 ran nine weeks in build; a two week threshold flags it.
		res := callTool(t, "get_at_risk_issues", map[string]any{
			"history_path":    writeExportFixture(t),
			"threshold_weeks": 2.0,
		})

		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"FLOW-1"`)
	})

	t.Run("get_issue_cycles without any history path", func(t *testing.T) {
		// The base config carries no default export, so a call without a
		// per-call history_path must fail per tool call.
		res := callTool(t, "get_issue_cycles", map[string]any{})

		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "history_path is required")
	})

	t.Run("get_issue_cycles missing export file", func(t *testing.T) {
		res := callTool(t, "get_issue_cycles", map[string]any{
			"history_path": filepath.Join(t.TempDir(), "missing.json"),
		})

		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}

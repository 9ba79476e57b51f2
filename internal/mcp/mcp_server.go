// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Flowspan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Flowspan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_issue_cycles ---
	s.AddTool(mcp.NewTool("get_issue_cycles",
		mcp.WithDescription("Compute per-issue cycle times from a tracker changelog export, ranked longest first."),
		mcp.WithString("history_path", mcp.Description("Path to the changelog export file (defaults to the configured path).")),
		mcp.WithString("phase", mcp.Description("Lifecycle phase to rank by (discovery, build). Defaults to 'build'."), mcp.Enum("discovery", "build")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetIssueCycles)

	// --- 2. Tool: get_cohort_summaries ---
	s.AddTool(mcp.NewTool("get_cohort_summaries",
		mcp.WithDescription("Compute quarterly cohort quartile summaries of cycle times for both phases."),
		mcp.WithString("history_path", mcp.Description("Path to the changelog export file.")),
	), h.handleGetCohortSummaries)

	// --- 3. Tool: get_at_risk_issues ---
	s.AddTool(mcp.NewTool("get_at_risk_issues",
		mcp.WithDescription("List issues whose phase cycle time exceeds a weeks threshold, longest first."),
		mcp.WithString("history_path", mcp.Description("Path to the changelog export file.")),
		mcp.WithString("phase", mcp.Description("Lifecycle phase to check (discovery, build)."), mcp.Enum("discovery", "build")),
		mcp.WithNumber("threshold_weeks", mcp.Description("At-risk threshold in weeks. Defaults to the configured threshold.")),
	), h.handleGetAtRiskIssues)

	return s
}

// StartMCPServer starts the Flowspan MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

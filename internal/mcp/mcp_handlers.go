package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flowspan/flowspan/core"
	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/histfile"
	"github.com/flowspan/flowspan/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// providerFor builds a history provider for the configured export path.
func providerFor(cfg *contract.Config) contract.HistoryProvider {
	return histfile.NewProvider(cfg.HistoryPath)
}

// applyHistoryPath resolves the per-call history path override. The server
// may start without a default export, so an empty resolved path is an error.
func applyHistoryPath(cfg *contract.Config, request mcp.CallToolRequest) error {
	if p := request.GetString("history_path", ""); p != "" {
		cfg.HistoryPath = p
	}
	if cfg.HistoryPath == "" {
		return fmt.Errorf("history_path is required")
	}
	return nil
}

func (h *toolHandler) handleGetIssueCycles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyHistoryPath(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p := request.GetString("phase", ""); p != "" {
		cfg.Phase = schema.Phase(p)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	ranked, failures, err := core.GetIssueResults(ctx, cfg, providerFor(cfg), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := struct {
		Issues   []schema.IssueResult  `json:"issues"`
		Failures []schema.IssueFailure `json:"failures,omitempty"`
	}{Issues: ranked, Failures: failures}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCohortSummaries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyHistoryPath(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cohorts, err := core.GetCohortResults(ctx, cfg, providerFor(cfg), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(cohorts, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetAtRiskIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyHistoryPath(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p := request.GetString("phase", ""); p != "" {
		cfg.Phase = schema.Phase(p)
	}
	if t := request.GetFloat("threshold_weeks", 0); t > 0 {
		cfg.AtRiskWeeks = t
	}

	ranked, _, err := core.GetIssueResults(ctx, cfg, providerFor(cfg), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	flagged := core.FilterAtRisk(ranked, cfg.Phase, cfg.AtRiskWeeks)

	jsonData, _ := json.MarshalIndent(flagged, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

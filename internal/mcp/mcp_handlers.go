package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/StephanieJJ/jupiter-audit/core"
	"github.com/StephanieJJ/jupiter-audit/core/algo"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  contract.DatasetLoader
}

// auditResult is the run_audit payload: the report plus ranked recommendations.
type auditResult struct {
	schema.AuditReport
	Ranked []schema.EnrichedRecommendation `json:"ranked_recommendations"`
}

// healthResult is the score_health payload.
type healthResult struct {
	Dataset string `json:"dataset"`
	Label   string `json:"label"`
	schema.HealthScore
}

// requestPaths reads the per-dataset path arguments.
func requestPaths(request mcp.CallToolRequest) map[schema.DatasetKind]string {
	paths := make(map[schema.DatasetKind]string, len(schema.AllDatasetKinds))
	for _, kind := range schema.AllDatasetKinds {
		paths[kind] = request.GetString(string(kind), "")
	}
	return paths
}

func (h *toolHandler) handleRunAudit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateAudit(cfg, requestPaths(request), request.GetString("now", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid audit parameters: %v", err)), nil
	}

	report, _, err := core.GetAuditResults(core.WithSuppressHeader(ctx), cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("audit failed: %v", err)), nil
	}

	result := auditResult{
		AuditReport: report,
		Ranked:      schema.EnrichRecommendations(algo.SortRecommendations(report.Summary.Recommendations)),
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("invalid health parameters: path is required"), nil
	}

	score, _, err := core.GetHealthResults(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.loader, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("health scoring failed: %v", err)), nil
	}

	result := healthResult{
		Dataset:     filepath.Base(path),
		Label:       schema.GetPlainLabel(score.Score),
		HealthScore: score,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckGates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateAudit(cfg, requestPaths(request), request.GetString("now", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}
	if err := contract.RevalidateThresholds(cfg, request.GetString("thresholds", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}

	report, _, err := core.GetAuditResults(core.WithSuppressHeader(ctx), cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	result := core.EvaluateGate(report, cfg.Thresholds)
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := core.BuildRulesModel(h.baseCfg.Rules)
	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Jupiter MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, l contract.DatasetLoader) *server.MCPServer {
	s := server.NewMCPServer(
		"Jupiter CRM Audit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  l,
	}

	// --- 1. Tool: run_audit ---
	s.AddTool(mcp.NewTool("run_audit",
		mcp.WithDescription("Audit CRM exports for data quality, relationships, engagement, support and churn risk."),
		mcp.WithString("contacts", mcp.Description("Path to the contacts export (CSV or XLSX).")),
		mcp.WithString("companies", mcp.Description("Path to the companies export (CSV or XLSX).")),
		mcp.WithString("tickets", mcp.Description("Path to the tickets export (CSV or XLSX).")),
		mcp.WithString("now", mcp.Description("Evaluation instant (ISO8601, YYYY-MM-DD or 'N [units] ago'). Defaults to the current time.")),
	), h.handleRunAudit)

	// --- 2. Tool: score_health ---
	s.AddTool(mcp.NewTool("score_health",
		mcp.WithDescription("Compute the 0-100 health score of a single export."),
		mcp.WithString("path", mcp.Description("Path to the export (CSV or XLSX)."), mcp.Required()),
	), h.handleScoreHealth)

	// --- 3. Tool: check_gates ---
	s.AddTool(mcp.NewTool("check_gates",
		mcp.WithDescription("Audit CRM exports and compare health scores with minimum thresholds."),
		mcp.WithString("contacts", mcp.Description("Path to the contacts export.")),
		mcp.WithString("companies", mcp.Description("Path to the companies export.")),
		mcp.WithString("tickets", mcp.Description("Path to the tickets export.")),
		mcp.WithString("now", mcp.Description("Evaluation instant. Defaults to the current time.")),
		mcp.WithString("thresholds", mcp.Description("Gate thresholds such as 'contacts:70,overall:65'. Gates: contacts, companies, tickets, overall, post.")),
	), h.handleCheckGates)

	// --- 4. Tool: list_rules ---
	s.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List the health score penalties, column resolution rules and recommendation triggers."),
	), h.handleListRules)

	return s
}

// StartMCPServer starts the Jupiter MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, l contract.DatasetLoader) error {
	s := NewMCPServer(baseCfg, l)
	return server.ServeStdio(s)
}

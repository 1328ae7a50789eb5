// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ossmetrics/pulse/internal/contract"
)

// NewMCPServer initializes and configures the Pulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.SeriesManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Pulse Series Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_project_series ---
	s.AddTool(mcp.NewTool("get_project_series",
		mcp.WithDescription("Fetch the stored quarter-by-quarter metric series for a project."),
		mcp.WithString("project", mcp.Description("Project name the series is stored under."), mcp.Required()),
		mcp.WithString("domain", mcp.Description("Metric domain (agility, community). Defaults to 'agility'."), mcp.Enum("agility", "community")),
		mcp.WithBoolean("reverse", mcp.Description("Return quarters newest first.")),
	), h.handleGetProjectSeries)

	// --- 2. Tool: get_project_stats ---
	s.AddTool(mcp.NewTool("get_project_stats",
		mcp.WithDescription("Aggregate a project's trailing four quarters into per-metric totals and trends."),
		mcp.WithString("project", mcp.Description("Project name the series is stored under."), mcp.Required()),
		mcp.WithString("domain", mcp.Description("Metric domain (agility, community). Defaults to 'agility'."), mcp.Enum("agility", "community")),
		mcp.WithNumber("offset", mcp.Description("Quarters to skip before the trailing-year window. Defaults to 1 so the current partial quarter is excluded.")),
	), h.handleGetProjectStats)

	// --- 3. Tool: list_projects ---
	s.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects with a stored metric series."),
	), h.handleListProjects)

	return s
}

// StartMCPServer starts the Pulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.SeriesManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

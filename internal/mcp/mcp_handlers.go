package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ossmetrics/pulse/core"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.SeriesManager
}

func (h *toolHandler) handleGetProjectSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Project = request.GetString("project", "")
	if cfg.Project == "" {
		return mcp.NewToolResultError("project is required"), nil
	}
	if d := request.GetString("domain", ""); d != "" {
		if _, ok := schema.ValidDomains[schema.Domain(d)]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid domain %q: must be agility or community", d)), nil
		}
		cfg.Domain = schema.Domain(d)
	}
	cfg.Reverse = request.GetBool("reverse", false)

	result, _, err := core.GetSeriesResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProjectStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Project = request.GetString("project", "")
	if cfg.Project == "" {
		return mcp.NewToolResultError("project is required"), nil
	}
	if d := request.GetString("domain", ""); d != "" {
		if _, ok := schema.ValidDomains[schema.Domain(d)]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid domain %q: must be agility or community", d)), nil
		}
		cfg.Domain = schema.Domain(d)
	}
	if o := request.GetInt("offset", -1); o >= 0 {
		if o > contract.MaxOffset {
			return mcp.NewToolResultError(fmt.Sprintf("offset must be between 0 and %d", contract.MaxOffset)), nil
		}
		cfg.Offset = o
	}

	result, _, err := core.GetStatsResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListProjects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetSeriesStore()
	if store == nil {
		return mcp.NewToolResultError("series store is not initialized"), nil
	}
	projects, err := store.Projects()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("project listing failed: %v", err)), nil
	}
	if projects == nil {
		projects = []string{}
	}

	jsonData, _ := json.MarshalIndent(projects, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

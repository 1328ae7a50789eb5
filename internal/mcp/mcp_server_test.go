package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/internal/iocache"
	mcp_internal "github.com/ossmetrics/pulse/internal/mcp"
	"github.com/ossmetrics/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		Domain:    schema.AgilityDomain,
		Offset:    contract.DefaultOffset,
		Precision: contract.DefaultPrecision,
	}

	// A manager backed by a mock store; validation errors fire before any store access
	store := &iocache.MockSeriesStore{}
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)

	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("get_project_series missing project", func(t *testing.T) {
		tool := s.GetTool("get_project_series")
		require.NotNil(t, tool, "Tool get_project_series should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_project_series",
				Arguments: map[string]any{
					"project": "", // Missing required
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "project is required")
	})

	t.Run("get_project_series invalid domain", func(t *testing.T) {
		tool := s.GetTool("get_project_series")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_project_series",
				Arguments: map[string]any{
					"project": "pulse",
					"domain":  "velocity", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid domain")
	})

	t.Run("get_project_stats invalid offset", func(t *testing.T) {
		tool := s.GetTool("get_project_stats")
		require.NotNil(t, tool, "Tool get_project_stats should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_project_stats",
				Arguments: map[string]any{
					"project": "pulse",
					"offset":  99.0, // Above the maximum
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "offset must be between")
	})
}

func TestMCPServerHandlers_EmptyStore(t *testing.T) {
	baseCfg := &contract.Config{
		Domain:    schema.AgilityDomain,
		Offset:    contract.DefaultOffset,
		Precision: contract.DefaultPrecision,
	}

	store := &iocache.MockSeriesStore{}
	store.On("Get", "ghost", schema.AgilityDomain).Return(schema.SeriesRecord{}, contract.ErrNoSeries)
	store.On("Projects").Return([]string(nil), nil)
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)

	s := mcp_internal.NewMCPServer(baseCfg, mgr)
	ctx := context.Background()

	t.Run("get_project_series unknown project", func(t *testing.T) {
		tool := s.GetTool("get_project_series")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_project_series",
				Arguments: map[string]any{
					"project": "ghost",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no agility series stored")
	})

	t.Run("list_projects empty", func(t *testing.T) {
		tool := s.GetTool("list_projects")
		require.NotNil(t, tool, "Tool list_projects should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "list_projects"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Equal(t, "[]", res.Content[0].(mcp.TextContent).Text)
	})
}

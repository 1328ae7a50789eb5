package cmd

import (
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/internal/mcp"
	"github.com/ossmetrics/pulse/schema"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Pulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to query stored quarter series via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The MCP tools name their project per request, so a placeholder
		// satisfies validation without touching a repository.
		return storeSetupMCP(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, seriesManager)
	},
}

// storeSetupMCP prepares config and persistence for the MCP server.
// Stdout carries the protocol, so setup avoids printing anything.
func storeSetupMCP(_ *cobra.Command, _ []string) error {
	if err := storeSetup(); err != nil {
		return err
	}
	cfg.Domain = schema.AgilityDomain
	cfg.Offset = contract.DefaultOffset
	cfg.Precision = contract.DefaultPrecision
	return nil
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

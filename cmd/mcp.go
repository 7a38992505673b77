package cmd

import (
	"github.com/huangsam/uli/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the uli MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents read the dashboard, trends
and recommendations, search reflections and log new ones.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

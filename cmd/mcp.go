package cmd

import (
	"github.com/flowspan/flowspan/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Flowspan MCP server",
	Long:  `Launch an MCP server that allows AI agents to run cycle-time analysis via standard tools.`,
	// The server runs without a default export; each tool call may carry
	// its own history_path.
	PreRunE: serverSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

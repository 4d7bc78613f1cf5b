package cmd

import (
	"github.com/StephanieJJ/jupiter-audit/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Jupiter MCP server",
	Long:  `Launch an MCP server that allows AI agents to audit CRM exports via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Handlers suppress header logs since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, fileLoader)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

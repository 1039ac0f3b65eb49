package cli

import (
	"github.com/spf13/cobra"

	"github.com/rulekeep-labs/rulekeep/internal/branding"
	"github.com/rulekeep-labs/rulekeep/internal/mcpserver"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server on stdio",
	Long: `Expose check, sync, and fix as MCP tools over stdio so AI coding tools
can manage rule projections themselves.

Add to your tool's MCP config:

  {
    "mcpServers": {
      "` + branding.CLIName() + `": {
        "command": "` + branding.CLIName() + `",
        "args": ["serve"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.Serve(buildVersion)
	},
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server exposing the interface detector
and the design filter as tools:

  find_interface  - interface residues of a PDB file
  filter_designs  - designs of a score CSV passing metric cutoffs
  list_filters    - metric filters with their bounds and defaults

The threshold table is also readable as the binderdash://filters resource.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead, e.g. for the MCP Inspector.

Examples:
  binderdash mcp serve
  binderdash mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "binderdash": {
        "command": "/path/to/binderdash",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Interface: interfaceService,
		Metrics:   metricsService,
		Settings:  settingsService,
		Version:   version,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// ABOUTME: CLI command serving read-only MCP query tools over stdio.
// ABOUTME: For Claude Desktop and other MCP-compatible assistants.
package main

import (
	"context"
	"fmt"

	"github.com/harperreed/vitals/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server (stdio)",
	Long: `Start a Model Context Protocol server exposing read-only query tools over
the fact store: readings, rollups, workouts, medications, and the data
quality report. Nothing can be written through MCP; the import pipeline is
the only writer.

Add to your Claude config:

  {
    "mcpServers": {
      "vitals": { "command": "vitals", "args": ["mcp"] }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(dbConn)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		return server.Serve(context.Background())
	},
}

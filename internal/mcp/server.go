// ABOUTME: MCP server setup for the vitals fact store.
// ABOUTME: Exposes read-only query tools; the store never changes through MCP.
package mcp

import (
	"context"
	"database/sql"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with read-only fact store access. The pipeline
// is the only writer; MCP consumers are downstream readers.
type Server struct {
	mcpServer *mcp.Server
	db        *sql.DB
}

// NewServer creates a new MCP server over the given store handle.
func NewServer(db *sql.DB) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vitals",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		db:        db,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

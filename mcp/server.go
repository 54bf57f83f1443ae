package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/lukman83/showcase/internal/app"
)

const (
	serverName    = "showcase-admin"
	serverVersion = "1.0.0"
)

// NewServer creates the MCP server with every admin tool registered.
func NewServer(a *app.App) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	registerTools(s, &tools{app: a})
	return s
}

// Serve starts the MCP stdio server.
func Serve(a *app.App) error {
	return server.ServeStdio(NewServer(a))
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/internal/app"
	mcpserver "github.com/lukman83/showcase/mcp"
)

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Start MCP HTTP server",
	Long:  "Start the MCP server over HTTP for remote access. Requests must carry $SHOWCASE_MCP_API_KEY as a bearer token when it is set.",
	RunE:  runServeHTTP,
}

func init() {
	serveHTTPCmd.Flags().String("port", "", "HTTP port (default from $PORT or 8080)")
	rootCmd.AddCommand(serveHTTPCmd)
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	port := cfg.HTTPPort
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	addr := fmt.Sprintf(":%s", port)
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		return mcpserver.ServeHTTP(ctx, addr, cfg.APIKey, a, logger)
	})
}

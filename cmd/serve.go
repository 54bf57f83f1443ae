package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/internal/app"
	mcpserver "github.com/lukman83/showcase/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "Starting showcase MCP server on stdio...")

	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if err := mcpserver.Serve(a); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	})
}

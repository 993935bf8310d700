package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parcels/internal/adapters/driving/mcp"
	"github.com/custodia-labs/parcels/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list,
refresh and add deliveries.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  parcels mcp serve

  # HTTP mode
  parcels mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "parcels": {
        "command": "/path/to/parcels",
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

// newMCPServer builds the server from the configured services.
func newMCPServer() (*mcp.Server, error) {
	if deliveryService == nil {
		return nil, errors.New("delivery service not configured")
	}
	return mcp.NewServer(&mcp.Ports{
		Deliveries: deliveryService,
		Refresh:    refreshEngine,
		Carriers:   carrierRegistry,
	})
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	refreshStale(ctx)

	// The scheduler and config watcher keep the cache current while serving.
	background := make(chan error, 1)
	go func() {
		background <- runBackground(ctx)
	}()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		err = server.RunHTTP(ctx, addr)
	} else {
		err = server.Run(ctx)
	}

	cancel()
	if bgErr := <-background; bgErr != nil {
		logger.Warn("background refresh: %v", bgErr)
	}
	return err
}

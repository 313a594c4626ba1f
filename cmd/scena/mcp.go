package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/scena/internal/cli"
	"github.com/aretw0/scena/internal/logging"
	"github.com/aretw0/scena/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [dir]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the workspace as an MCP Server.
This allows AI agents to query the layer tree and compute selections as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		opts := readOptions(cmd, args)

		// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
		logger := logging.New(slog.LevelInfo)
		if opts.Debug {
			logger = logging.New(slog.LevelDebug)
		}
		log.SetOutput(os.Stderr)

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		ws, err := cli.NewWorkspace(sigCtx, opts, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := cli.WatchReload(sigCtx, ws, logger, nil); err != nil {
				logger.Debug("Hot reload disabled", "err", err)
			}
		}()

		srv := mcp.NewServer(ws, logger)

		switch transport {
		case "stdio":
			logger.Info("Starting Scena MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting Scena MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(sigCtx, port); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("MCP Server execution failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpAdapter "github.com/aretw0/scena/internal/adapters/http"
	"github.com/aretw0/scena/internal/cli"
	"github.com/aretw0/scena/internal/logging"
	"github.com/aretw0/scena/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Start the HTTP selection server",
	Long: `Serves the workspace over a JSON API: gesture selection, drill, tree,
children and CSS, plus /events (SSE) and Prometheus /metrics.
The workspace reloads whenever its source changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		opts := readOptions(cmd, args)

		level := slog.LevelInfo
		if opts.Debug {
			level = slog.LevelDebug
		}
		logger := logging.NewJSON(os.Stderr, level)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts.Hooks = observability.NewMetrics(reg).Hooks()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		ws, err := cli.NewWorkspace(sigCtx, opts, logger)
		if err != nil {
			return err
		}

		sessions, err := cli.NewSessionManager(opts, logger)
		if err != nil {
			return err
		}

		go func() {
			if err := cli.WatchReload(sigCtx, ws, logger, nil); err != nil {
				logger.Warn("Hot reload disabled", "err", err)
			}
		}()

		srv := &http.Server{
			Addr: ":" + port,
			Handler: httpAdapter.NewHandler(ws,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithSessions(sessions),
				httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
			),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Scena Server", "address", srv.Addr, "workspace", ws.Name)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Scena Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}

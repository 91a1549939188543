package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"promptpad/api"
	"promptpad/config"
	"promptpad/workspace"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser UI",
	Long: `Start the promptpad HTTP server.

The server provides:
  - /                  - workspace list
  - /workspace/{id}    - the prompt composer
  - /api/...           - JSON API used by the pages and by scripts

Edits to the config file are picked up while running (log level,
translation defaults, export timestamp). Host, port and storage need a
restart.

Examples:
  promptpad serve                    # Start on 127.0.0.1:8080
  promptpad serve --port 3000        # Start on custom port
  promptpad serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			cfg := a.cfg.Get()
			host, port := cfg.Server.Host, cfg.Server.Port
			if cmd.Flags().Changed("host") {
				host = serveHost
			}
			if cmd.Flags().Changed("port") {
				port = servePort
			}

			a.cfg.OnChange(func(c *config.Config) {
				if logLevelFlag != "" {
					return
				}
				if l, err := config.ParseLevel(c.LogLevel); err == nil {
					logLevel.Set(l)
				}
				a.logger.Info("config reloaded", "file", a.cfg.FileUsed())
			})
			a.cfg.WatchConfig(func(err error) {
				a.logger.Error("config reload rejected", "error", err)
			})

			workspaces := workspace.NewManager(a.logger)
			defer workspaces.CloseAll()

			srv := &http.Server{
				Addr:         net.JoinHostPort(host, port),
				Handler:      api.RegisterRoutes(a.controller, workspaces, staticFiles, a.logger),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}
			return runServer(cmd.Context(), srv, a.logger)
		})
	},
}

// runServer blocks until ctx is cancelled or the listener fails.
func runServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")

	rootCmd.AddCommand(serveCmd)
}

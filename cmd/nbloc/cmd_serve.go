package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/d-kuro/nbloc/internal/server"
	"github.com/d-kuro/nbloc/pkg/version"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server over stdio exposing the locator tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.New(&server.Options{
				Logger:  a.logger,
				Locator: a.locator,
			})
			if err != nil {
				a.logger.Error("Failed to create server", slog.Any("error", err))
				return fmt.Errorf("failed to create server: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			a.logger.Info("nbloc MCP server starting",
				slog.String("version", version.GetVersion().Version),
				slog.Int("tools_available", srv.GetRegistry().Count()),
				slog.String("notebook_dir", a.locator.Dir()))

			err = srv.Serve(ctx, mcp.NewStdioTransport())
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("Server error", slog.Any("error", err))
				return err
			}

			a.logger.Info("nbloc MCP server stopped")
			return nil
		},
	}
}

// Package server implements the MCP server exposing the notebook locator.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/nbloc/internal/locator"
	"github.com/d-kuro/nbloc/internal/logging"
	"github.com/d-kuro/nbloc/internal/tools"
	"github.com/d-kuro/nbloc/internal/tools/locate"
	"github.com/d-kuro/nbloc/pkg/version"
)

// Server represents the nbloc MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	logger    *logging.Logger
}

// Options configures the server instance.
type Options struct {
	Logger  *logging.Logger
	Locator *locator.Locator
}

// New creates a new MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts.Locator == nil {
		return nil, fmt.Errorf("locator is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger("info")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "nbloc",
		Version: version.GetVersion().Version,
	}, nil)

	server := &Server{
		mcpServer: mcpServer,
		registry:  tools.NewRegistry(),
		logger:    opts.Logger,
	}

	toolCtx := &tools.Context{
		Logger:  opts.Logger,
		Locator: opts.Locator,
	}
	if err := server.registerTools(toolCtx); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return server, nil
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

func (s *Server) registerTools(toolCtx *tools.Context) error {
	for _, tool := range locate.CreateLocateTools(toolCtx) {
		if err := s.registry.Register(tool); err != nil {
			return err
		}
	}

	s.registry.Install(s.mcpServer)

	s.logger.Debug("Registered tools",
		slog.Int("count", s.registry.Count()),
		slog.Any("tools", s.registry.List()),
	)
	return nil
}

// Serve runs the MCP server with the specified transport until the session
// ends or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("transport", fmt.Sprintf("%T", transport)),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		return ctx.Err()
	}
}

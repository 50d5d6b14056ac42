// Package tools provides the shared plumbing for nbloc's MCP tools.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/nbloc/internal/locator"
	"github.com/d-kuro/nbloc/internal/logging"
)

// Context contains common dependencies needed by tools.
type Context struct {
	Logger  *logging.Logger
	Locator *locator.Locator
}

// ServerTool pairs a tool definition with the function that registers its
// typed handler on an MCP server.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(server *mcp.Server)
}

// NoArgs is the argument type of tools that take no input.
type NoArgs struct{}

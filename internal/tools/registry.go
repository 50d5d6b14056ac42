package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolBuilder provides a fluent interface for building tools with type safety.
type ToolBuilder[T any] struct {
	name        string
	description string
	handler     func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)
}

// NewToolBuilder creates a new tool builder.
func NewToolBuilder[T any](name, description string) *ToolBuilder[T] {
	return &ToolBuilder[T]{
		name:        name,
		description: description,
	}
}

// WithHandler sets the tool handler function.
func (b *ToolBuilder[T]) WithHandler(handler func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)) *ToolBuilder[T] {
	b.handler = handler
	return b
}

// Build creates the ServerTool.
func (b *ToolBuilder[T]) Build() *ServerTool {
	if b.handler == nil {
		panic(fmt.Sprintf("handler not set for tool %s", b.name))
	}

	tool := &mcp.Tool{
		Name:        b.name,
		Description: b.description,
	}

	return &ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, b.handler)
		},
	}
}

// Registry tracks the tools registered on a server.
type Registry struct {
	tools map[string]*ServerTool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*ServerTool)}
}

// Register records tool. Names must be unique and non-empty.
func (r *Registry) Register(tool *ServerTool) error {
	if tool == nil || tool.Tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}

	name := tool.Tool.Name
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Tool.Description == "" {
		return fmt.Errorf("tool %s has empty description", name)
	}
	if tool.RegisterFunc == nil {
		return fmt.Errorf("tool %s has nil register function", name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s is already registered", name)
	}

	r.tools[name] = tool
	return nil
}

// Install registers every recorded tool on server.
func (r *Registry) Install(server *mcp.Server) {
	for _, name := range r.List() {
		r.tools[name].RegisterFunc(server)
	}
}

// List returns all registered tool names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(r.tools)
}

// Package locate exposes the notebook locator as MCP tools.
package locate

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/nbloc/internal/locator"
	"github.com/d-kuro/nbloc/internal/prompts"
	"github.com/d-kuro/nbloc/internal/tools"
)

// NotebookByNumberArgs represents the arguments for the NotebookByNumber tool.
type NotebookByNumberArgs struct {
	Number *int   `json:"number,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// CreateLocateTools creates all locator tools.
func CreateLocateTools(ctx *tools.Context) []*tools.ServerTool {
	return []*tools.ServerTool{
		tools.NewToolBuilder[tools.NoArgs]("CurrentNotebook", prompts.CurrentNotebookToolDoc).
			WithHandler(currentHandler(ctx)).Build(),
		tools.NewToolBuilder[tools.NoArgs]("NextNotebook", prompts.NextNotebookToolDoc).
			WithHandler(adjacentHandler(ctx, "NextNotebook", 1)).Build(),
		tools.NewToolBuilder[tools.NoArgs]("PreviousNotebook", prompts.PreviousNotebookToolDoc).
			WithHandler(adjacentHandler(ctx, "PreviousNotebook", -1)).Build(),
		tools.NewToolBuilder[NotebookByNumberArgs]("NotebookByNumber", prompts.NotebookByNumberToolDoc).
			WithHandler(byNumberHandler(ctx)).Build(),
		tools.NewToolBuilder[tools.NoArgs]("ListNotebooks", prompts.ListNotebooksToolDoc).
			WithHandler(listNotebooksHandler(ctx)).Build(),
		tools.NewToolBuilder[tools.NoArgs]("ListNotebookServers", prompts.ListNotebookServersToolDoc).
			WithHandler(listServersHandler(ctx)).Build(),
	}
}

func currentHandler(ctx *tools.Context) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
	return func(ctxReq context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
		path, err := ctx.Locator.CurrentPath(ctxReq)
		if err != nil {
			ctx.Logger.WithTool("CurrentNotebook").Warn("Lookup failed", slog.Any("error", err))
			return tools.ErrorResponse(err.Error()), nil
		}
		return tools.SuccessResponse(path), nil
	}
}

func adjacentHandler(ctx *tools.Context, name string, delta int) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
	return func(ctxReq context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
		path, err := ctx.Locator.Adjacent(ctxReq, delta)
		if err != nil {
			ctx.Logger.WithTool(name).Warn("Lookup failed", slog.Any("error", err))
			return tools.ErrorResponse(err.Error()), nil
		}
		return tools.SuccessResponse(path), nil
	}
}

func byNumberHandler(ctx *tools.Context) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[NotebookByNumberArgs]) (*mcp.CallToolResultFor[any], error) {
	return func(_ context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[NotebookByNumberArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments

		var (
			path string
			err  error
		)
		switch {
		case args.Number != nil && args.Prefix != "":
			return tools.ErrorResponse("specify either number or prefix, not both"), nil
		case args.Number != nil:
			path, err = ctx.Locator.ByNumber(*args.Number)
		case args.Prefix != "":
			path, err = ctx.Locator.ByPrefix(args.Prefix)
		default:
			return tools.ErrorResponse("number or prefix is required"), nil
		}

		if err != nil {
			return tools.ErrorResponse(err.Error()), nil
		}
		return tools.SuccessResponse(path), nil
	}
}

func listNotebooksHandler(ctx *tools.Context) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
	return func(_ context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
		notebooks, err := ctx.Locator.List()
		if err != nil {
			return tools.ErrorResponse(err.Error()), nil
		}
		return tools.JSONResponse(notebooks), nil
	}
}

func listServersHandler(ctx *tools.Context) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
	return func(ctxReq context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[tools.NoArgs]) (*mcp.CallToolResultFor[any], error) {
		probes, err := ctx.Locator.Probe(ctxReq)
		if err != nil {
			return tools.ErrorResponse(err.Error()), nil
		}

		statuses := make([]locator.ServerStatus, 0, len(probes))
		for _, p := range probes {
			statuses = append(statuses, p.Status())
		}
		return tools.JSONResponse(statuses), nil
	}
}

// Package gateway adapts the tool catalog to external reasoning components:
// an MCP stdio server and an OpenAI-compatible console runner. No domain
// logic lives here.
package gateway

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kritsw/attendant/agent/assistant"
	toolx "github.com/kritsw/attendant/agent/tool"
)

const serverVersion = "0.1.0"

// NewMCPServer registers every tool of the assistant on an MCP server. Tool
// results are always plain text; dispatch already converted failures to
// conversational messages, so handlers never return protocol errors.
func NewMCPServer(a assistant.Assistant, reg *toolx.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		"attendant-"+a.Name(),
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(a.Instructions()),
		server.WithRecovery(),
	)

	for _, spec := range reg.Specs() {
		s.AddTool(mcpTool(spec), mcpHandler(reg, spec.Name))
	}
	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func mcpTool(spec toolx.Spec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Desc)}
	for _, arg := range spec.Args {
		var propOpts []mcp.PropertyOption
		if arg.Desc != "" {
			propOpts = append(propOpts, mcp.Description(arg.Desc))
		}
		if arg.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		switch arg.Type {
		case toolx.TypeInt, toolx.TypeFloat:
			opts = append(opts, mcp.WithNumber(arg.Name, propOpts...))
		case toolx.TypeBool:
			opts = append(opts, mcp.WithBoolean(arg.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(arg.Name, propOpts...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}

func mcpHandler(reg *toolx.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := reg.Dispatch(ctx, name, req.GetArguments())
		return mcp.NewToolResultText(text), nil
	}
}

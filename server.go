package pdftools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server identity reported during the MCP handshake.
const ServerName = "pdftools-mcp-server"

// Version is the server version, overridden at build time via ldflags.
var Version = "1.0.0"

// NewServer registers every tool of Tools on a new MCP server, each
// handled by d.
func NewServer(d *Dispatcher) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	)
	for _, tool := range Tools() {
		s.AddTool(tool, d.HandleTool)
	}
	return s
}

// HandleTool adapts Dispatch to the mcp-go tool handler signature.
// Failures are reported in the result, never as a protocol error.
func (d *Dispatcher) HandleTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.Dispatch(ctx, req.Params.Name, req.GetArguments()).ToolResult(), nil
}

// ToolResult converts r to the MCP wire shape: one text item, with the
// error flag set on failure.
func (r Result) ToolResult() *mcp.CallToolResult {
	if r.IsError {
		return mcp.NewToolResultError(r.Text)
	}
	return mcp.NewToolResultText(r.Text)
}

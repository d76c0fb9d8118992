package pdftools

// Notes:
// - Drives the MCP server through HandleMessage with raw JSON-RPC, the same
//   bytes a stdio client would send, and decodes replies into plain maps.
// - Tool failures must come back as results flagged isError, not as
//   JSON-RPC errors; only names the server never registered are protocol
//   errors.

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcClient struct {
	t      *testing.T
	server *server.MCPServer
	nextID int
}

func newRPCClient(t *testing.T, s *server.MCPServer) *rpcClient {
	t.Helper()

	c := &rpcClient{t: t, server: s}
	reply := c.call("initialize", map[string]any{
		"protocolVersion": "2025-03-26",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0"},
	})
	require.Contains(t, reply, "result", "initialize failed: %v", reply)
	return c
}

// call sends one request and returns the decoded reply.
func (c *rpcClient) call(method string, params any) map[string]any {
	c.t.Helper()

	c.nextID++
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      c.nextID,
		"method":  method,
		"params":  params,
	})
	require.NoError(c.t, err)

	msg := c.server.HandleMessage(context.Background(), raw)
	require.NotNil(c.t, msg, "no reply to %s", method)

	out, err := json.Marshal(msg)
	require.NoError(c.t, err)

	var reply map[string]any
	require.NoError(c.t, json.Unmarshal(out, &reply))
	return reply
}

// toolText calls name with args and returns the first text item and the
// error flag of the result.
func (c *rpcClient) toolText(name string, args map[string]any) (string, bool) {
	c.t.Helper()

	reply := c.call("tools/call", map[string]any{"name": name, "arguments": args})
	result, ok := reply["result"].(map[string]any)
	require.True(c.t, ok, "tools/call returned no result: %v", reply)

	content, ok := result["content"].([]any)
	require.True(c.t, ok)
	require.Len(c.t, content, 1)

	item := content[0].(map[string]any)
	assert.Equal(c.t, "text", item["type"])

	isError, _ := result["isError"].(bool)
	return fmt.Sprint(item["text"]), isError
}

func newTestServer(t *testing.T) (*rpcClient, string) {
	t.Helper()

	d, home := newTestDispatcher(t)
	return newRPCClient(t, NewServer(d)), home
}

// ---------------------------------------------------------------------------
// TestServer_Handshake
// ---------------------------------------------------------------------------

func TestServer_Handshake(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	c := &rpcClient{t: t, server: NewServer(d)}

	reply := c.call("initialize", map[string]any{
		"protocolVersion": "2025-03-26",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0"},
	})

	result := reply["result"].(map[string]any)
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, ServerName, info["name"])
	assert.Equal(t, Version, info["version"])
	assert.Contains(t, result["capabilities"], "tools")
}

// ---------------------------------------------------------------------------
// TestServer_ListTools
// ---------------------------------------------------------------------------

func TestServer_ListTools(t *testing.T) {
	t.Parallel()

	c, _ := newTestServer(t)

	reply := c.call("tools/list", map[string]any{})
	result := reply["result"].(map[string]any)
	tools := result["tools"].([]any)

	var names []string
	for _, tool := range tools {
		m := tool.(map[string]any)
		names = append(names, m["name"].(string))
		schema := m["inputSchema"].(map[string]any)
		assert.Contains(t, schema["required"], "output_filename")
	}
	assert.ElementsMatch(t, ToolNames(), names)
}

// ---------------------------------------------------------------------------
// TestServer_CallTool
// ---------------------------------------------------------------------------

func TestServer_CallTool(t *testing.T) {
	t.Parallel()

	c, home := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		text, isError := c.toolText(ToolText, map[string]any{
			"text_content":    "Hello",
			"output_filename": "a.pdf",
		})

		assert.False(t, isError, text)
		assert.Equal(t, "PDF successfully generated from text: "+filepath.Join(home, "Downloads", "a.pdf"), text)
	})

	t.Run("failure is a tool result", func(t *testing.T) {
		text, isError := c.toolText(ToolMarkdown, map[string]any{
			"markdown_content": "# x",
			"output_filename":  "a.pdf",
			"output_dir":       "/etc",
		})

		assert.True(t, isError)
		assert.Contains(t, text, "Error: output path not allowed")
	})

	t.Run("missing arguments", func(t *testing.T) {
		text, isError := c.toolText(ToolHTML, map[string]any{})

		assert.True(t, isError)
		assert.Contains(t, text, "missing required argument")
	})

	t.Run("unregistered tool", func(t *testing.T) {
		reply := c.call("tools/call", map[string]any{"name": "bogus_tool", "arguments": map[string]any{}})

		assert.Contains(t, reply, "error")
		assert.NotContains(t, reply, "result")
	})
}

// ---------------------------------------------------------------------------
// TestResult_ToolResult
// ---------------------------------------------------------------------------

func TestResult_ToolResult(t *testing.T) {
	t.Parallel()

	ok := successResult("HTML", "/x/a.pdf").ToolResult()
	assert.False(t, ok.IsError)
	require.Len(t, ok.Content, 1)

	bad := errorResult(fmt.Errorf("%w: nope", ErrUnknownTool)).ToolResult()
	assert.True(t, bad.IsError)
	require.Len(t, bad.Content, 1)
}

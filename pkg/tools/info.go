package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is stamped at build time with the -X linker flag.
var Version = "0.1.0"

// ServerInfo builds the server_info tool: name, version, and the tool
// inventory, so an agent can discover what it can call.
func ServerInfo(reg *Registry) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "server_info",
			Description: "Get information about this Attio MCP server and its available tools.",
			Annotations: &mcp.ToolAnnotations{Title: "Server Info"},
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		Group: GroupMeta,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			return OK(map[string]any{
				"server_name":     "attio-mcp",
				"version":         Version,
				"description":     "MCP server exposing Attio CRM records through typed query tools",
				"available_tools": reg.Names(),
			}, "attio-mcp "+Version), nil
		},
	}
}

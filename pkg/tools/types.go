// Package tools defines the agent-facing operations of the Attio MCP server.
// Each tool wraps an MCP tool definition with its execution logic and returns
// a uniform success/data/message envelope.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/attio-mcp/pkg/attio"
)

// Tool wraps an MCP tool with execution logic and a grouping label.
type Tool struct {
	mcp.Tool        // Name, Description, InputSchema
	Group    string // group:query, group:discovery, etc.
	Execute  func(ctx context.Context, input map[string]any) (*Result, error)
}

const (
	GroupQuery     = "group:query"
	GroupDiscovery = "group:discovery"
	GroupWrite     = "group:write"
	GroupMeta      = "group:meta"
)

// Result is the envelope every tool returns to the agent. On failure Data is
// absent and Suggestion guides remediation.
type Result struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Deps holds the collaborators tools execute against.
type Deps struct {
	Client *attio.Client
	Log    zerolog.Logger
}

// client returns the Attio client to use for one call, honoring the optional
// api_key override argument.
func (d *Deps) client(input map[string]any) *attio.Client {
	if key, _ := ReadString(input, "api_key", false); key != "" {
		return d.Client.WithAPIKey(key)
	}
	return d.Client
}

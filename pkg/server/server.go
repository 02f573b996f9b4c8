// Package server exposes the tool registry as an MCP server over streamable
// HTTP.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/attio-mcp/pkg/tools"
)

// Server wraps an MCP server serving the Attio tools.
type Server struct {
	mcp *mcp.Server
	log zerolog.Logger
}

// New builds an MCP server with every tool in the registry registered.
func New(reg *tools.Registry, log zerolog.Logger) *Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "attio-mcp",
		Version: tools.Version,
	}, nil)
	for _, tool := range reg.All() {
		mcp.AddTool(srv, &tool.Tool, handlerFor(tool, log))
	}
	return &Server{mcp: srv, log: log}
}

// handlerFor adapts a tool's Execute to the MCP handler shape. Tool failures
// become error envelopes, never protocol errors, so the agent always gets
// the message and suggestion fields back.
func handlerFor(tool *tools.Tool, log zerolog.Logger) mcp.ToolHandlerFor[map[string]any, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		toolLog := log.With().Str("tool", tool.Name).Logger()
		ctx = toolLog.WithContext(ctx)

		result, err := tool.Execute(ctx, args)
		if err != nil {
			toolLog.Err(err).Msg("Tool execution failed")
			result = tools.Failure(err)
		} else if !result.Success {
			toolLog.Debug().Str("message", result.Message).Msg("Tool returned failure envelope")
		}

		body, err := json.Marshal(result)
		if err != nil {
			return nil, nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
			IsError: !result.Success,
		}, nil, nil
	}
}

// Handler returns the streamable HTTP handler for the MCP endpoint. Stateless
// so any replica can answer any request.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}

// ListenAndServe serves the MCP endpoint until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		<-ctx.Done()
		s.log.Info().Msg("Shutting down MCP server")
		_ = httpServer.Shutdown(context.Background())
	}()
	s.log.Info().Str("listen", addr).Msg("MCP server listening")
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

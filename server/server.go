// Package server implements the demo MCP server: the same three
// builtin tools the direct-call demo uses, plus a few resources and
// prompt templates, served over SSE, streamable HTTP or stdio.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/rathore/toolbridge/tools"
)

const (
	serverName    = "DemoMCPServer"
	serverVersion = "1.0.0"

	shutdownTimeout = 5 * time.Second
)

// Server wraps an MCP server over the builtin tool registry.
type Server struct {
	mcp      *mcpserver.MCPServer
	registry *tools.Registry
}

// New builds the demo server: tools from the builtin registry (schemas
// derived by the same schema builder the direct path uses), then the
// demo resources and prompts.
func New() (*Server, error) {
	s := &Server{
		mcp: mcpserver.NewMCPServer(serverName, serverVersion,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithResourceCapabilities(false, false),
			mcpserver.WithPromptCapabilities(false),
			mcpserver.WithRecovery(),
		),
		registry: tools.Builtins(),
	}

	catalog, err := s.registry.Catalog()
	if err != nil {
		return nil, err
	}
	for _, d := range catalog.List() {
		s.addTool(d)
	}
	s.addResources()
	s.addPrompts()
	return s, nil
}

func (s *Server) addTool(d tools.Descriptor) {
	fn, _ := s.registry.Func(d.Name)
	tool := mcp.NewToolWithRawSchema(d.Name, d.Description, d.JSONSchema())
	s.mcp.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fn(ctx, req.GetArguments())
		// Error-form results are ordinary values on the wire too,
		// mirroring the direct-call contract.
		return &mcp.CallToolResult{
			Content:           []mcp.Content{mcp.NewTextContent(result.String())},
			StructuredContent: map[string]any(result),
		}, nil
	})
}

// Run serves until ctx is canceled. Supported transports: "sse"
// (endpoint /sse), "streamable-http" (endpoint /mcp) and "stdio".
func (s *Server) Run(ctx context.Context, transport, addr string) error {
	switch transport {
	case "stdio":
		slog.Info("serving MCP over stdio", "server", serverName)
		return mcpserver.ServeStdio(s.mcp)
	case "sse":
		sse := mcpserver.NewSSEServer(s.mcp)
		return runHTTP(ctx, addr, sse.Start, sse.Shutdown)
	case "http", "streamable-http":
		httpSrv := mcpserver.NewStreamableHTTPServer(s.mcp)
		return runHTTP(ctx, addr, httpSrv.Start, httpSrv.Shutdown)
	default:
		return errors.Newf("unknown transport %q", transport)
	}
}

func runHTTP(ctx context.Context, addr string, start func(string) error, shutdown func(context.Context) error) error {
	slog.Info("serving MCP", "addr", addr)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

package server

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const welcomeDoc = `
# Welcome to MCP Demo Server

This is a simple demonstration server showing:
- Tool discovery and execution
- Resource access
- Prompt templates

Available tools: get_weather, calculate, get_user_info
`

func (s *Server) addResources() {
	s.mcp.AddResource(
		mcp.NewResource("demo://docs/welcome", "welcome_doc",
			mcp.WithResourceDescription("Welcome documentation for the demo server."),
			mcp.WithMIMEType("text/markdown"),
		),
		textResource("demo://docs/welcome", "text/markdown", strings.TrimSpace(welcomeDoc)),
	)

	serverConfig := map[string]any{
		"name":                 serverName,
		"version":              serverVersion,
		"tools_count":          3,
		"resources_count":      3,
		"prompts_count":        2,
		"supported_transports": []string{"sse", "http", "streamable-http", "stdio"},
	}
	s.mcp.AddResource(
		mcp.NewResource("demo://config/server", "server_config",
			mcp.WithResourceDescription("Server configuration information."),
			mcp.WithMIMEType("application/json"),
		),
		jsonResource("demo://config/server", serverConfig),
	)

	sampleData := map[string]any{
		"users":      []string{"Alice", "Bob", "Charlie"},
		"cities":     []string{"New York", "London", "Tokyo"},
		"operations": []string{"add", "subtract", "multiply", "divide"},
		"timestamp":  "2025-09-19T12:00:00Z",
	}
	s.mcp.AddResource(
		mcp.NewResource("demo://data/sample", "sample_data",
			mcp.WithResourceDescription("Sample data for demonstration."),
			mcp.WithMIMEType("application/json"),
		),
		jsonResource("demo://data/sample", sampleData),
	)
}

func textResource(uri, mimeType, text string) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: uri, MIMEType: mimeType, Text: text},
		}, nil
	}
}

func jsonResource(uri string, value map[string]any) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(data)},
		}, nil
	}
}

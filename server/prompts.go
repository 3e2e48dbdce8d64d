package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

var toolHelp = map[string]string{
	"get_weather":   "Use get_weather(city) to get weather info for New York, London, or Tokyo",
	"calculate":     "Use calculate(operation, a, b) with operations: add, subtract, multiply, divide",
	"get_user_info": "Use get_user_info(user_id) with IDs 1, 2, or 3 to get user details",
	"all":           "Available tools: get_weather, calculate, get_user_info. Each tool has specific parameters.",
}

func (s *Server) addPrompts() {
	s.mcp.AddPrompt(
		mcp.NewPrompt("greeting",
			mcp.WithPromptDescription("Generate a personalized greeting."),
			mcp.WithArgument("name", mcp.ArgumentDescription("Name to greet, defaults to User")),
		),
		func(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			name := req.Params.Arguments["name"]
			if name == "" {
				name = "User"
			}
			text := fmt.Sprintf("Hello %s! Welcome to the MCP Demo Server. How can I help you today?", name)
			return mcp.NewGetPromptResult("Personalized greeting", []mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			}), nil
		},
	)

	s.mcp.AddPrompt(
		mcp.NewPrompt("tool_help",
			mcp.WithPromptDescription("Provide help information for tools."),
			mcp.WithArgument("tool_name", mcp.ArgumentDescription("Tool to describe, defaults to all")),
		),
		func(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			toolName := req.Params.Arguments["tool_name"]
			if toolName == "" {
				toolName = "all"
			}
			text, ok := toolHelp[toolName]
			if !ok {
				text = fmt.Sprintf("No help available for tool: %s", toolName)
			}
			return mcp.NewGetPromptResult("Tool help", []mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			}), nil
		},
	)
}

package remote

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rathore/toolbridge/tools"
)

// toDescriptor converts a discovered MCP tool into the catalog shape.
// JSON schema properties carry no order, so parameters are sorted by
// name to keep catalog rendering deterministic.
func toDescriptor(t mcp.Tool) tools.Descriptor {
	required := make(map[string]bool, len(t.InputSchema.Required))
	for _, name := range t.InputSchema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(t.InputSchema.Properties))
	for name := range t.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]tools.Param, 0, len(names))
	for _, name := range names {
		params = append(params, toParam(name, t.InputSchema.Properties[name], required[name]))
	}

	return tools.Descriptor{
		Name:        t.Name,
		Description: t.Description,
		Params:      params,
	}
}

func toParam(name string, prop any, required bool) tools.Param {
	param := tools.Param{
		Name:     name,
		Kind:     tools.KindString,
		Required: required,
	}
	fields, ok := prop.(map[string]any)
	if !ok {
		return param
	}
	switch fields["type"] {
	case "integer":
		param.Kind = tools.KindInteger
	case "number":
		param.Kind = tools.KindNumber
	}
	if desc, ok := fields["description"].(string); ok {
		param.Description = desc
	}
	return param
}

// toResult maps a tool call reply into a Result. Structured content
// wins when present; otherwise the text content is used, parsed as a
// JSON object when it is one.
func toResult(res *mcp.CallToolResult) tools.Result {
	text := textContent(res)

	if res.IsError {
		if text == "" {
			text = "tool reported an error"
		}
		return tools.Errorf("%s", text)
	}

	if res.StructuredContent != nil {
		if m, ok := res.StructuredContent.(map[string]any); ok {
			return tools.Result(m)
		}
		return tools.Result{"result": res.StructuredContent}
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err == nil {
		return tools.Result(m)
	}
	return tools.Result{"content": text}
}

func textContent(res *mcp.CallToolResult) string {
	var parts []string
	for _, item := range res.Content {
		if tc, ok := item.(mcp.TextContent); ok && tc.Text != "" {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ResourceInfo summarizes one discovered resource.
type ResourceInfo struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// PromptInfo summarizes one discovered prompt template.
type PromptInfo struct {
	Name        string
	Description string
	Arguments   []string
}

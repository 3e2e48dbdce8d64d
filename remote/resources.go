package remote

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListResources lists the resources the server exposes.
func (c *Client) ListResources(ctx context.Context) ([]ResourceInfo, error) {
	res, err := c.mcp.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "list resources")
	}
	infos := make([]ResourceInfo, 0, len(res.Resources))
	for _, r := range res.Resources {
		infos = append(infos, ResourceInfo{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		})
	}
	return infos, nil
}

// ReadResource reads a resource and returns its text contents.
func (c *Client) ReadResource(ctx context.Context, uri string) (string, error) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	res, err := c.mcp.ReadResource(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "read resource %q", uri)
	}
	out := ""
	for _, item := range res.Contents {
		if tc, ok := item.(mcp.TextResourceContents); ok {
			if out != "" {
				out += "\n"
			}
			out += tc.Text
		}
	}
	return out, nil
}

// ListPrompts lists the prompt templates the server exposes.
func (c *Client) ListPrompts(ctx context.Context) ([]PromptInfo, error) {
	res, err := c.mcp.ListPrompts(ctx, mcp.ListPromptsRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "list prompts")
	}
	infos := make([]PromptInfo, 0, len(res.Prompts))
	for _, p := range res.Prompts {
		info := PromptInfo{Name: p.Name, Description: p.Description}
		for _, arg := range p.Arguments {
			info.Arguments = append(info.Arguments, arg.Name)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// GetPrompt renders a prompt template and returns its message text.
func (c *Client) GetPrompt(ctx context.Context, name string, args map[string]string) (string, error) {
	req := mcp.GetPromptRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.mcp.GetPrompt(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "get prompt %q", name)
	}
	out := ""
	for _, msg := range res.Messages {
		if tc, ok := msg.Content.(mcp.TextContent); ok {
			if out != "" {
				out += "\n"
			}
			out += tc.Text
		}
	}
	return out, nil
}

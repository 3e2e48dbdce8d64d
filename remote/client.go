// Package remote implements the transport contract (discovery, call,
// liveness) over the Model Context Protocol using mark3labs/mcp-go.
package remote

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rathore/toolbridge/dispatch"
	"github.com/rathore/toolbridge/tools"
)

const clientVersion = "1.0.0"

// Client is a connected MCP client. It satisfies dispatch.Transport,
// so a remote invoker can execute calls through it, and adds the
// resource and prompt operations the discovery demo uses.
type Client struct {
	target string
	mcp    *mcpclient.Client
}

var _ dispatch.Transport = (*Client)(nil)

// Dial connects to an MCP endpoint and runs the initialize handshake.
// Targets:
//
//	http(s) URL ending in /sse  → SSE transport
//	other http(s) URL           → streamable HTTP transport
//	anything else               → stdio command line
//
// The endpoint must already be serving; bringing it up is the process
// lifecycle collaborator's job, not this package's.
func Dial(ctx context.Context, target string) (*Client, error) {
	var (
		c         *mcpclient.Client
		err       error
		needStart bool
	)
	switch {
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
		if strings.HasSuffix(strings.TrimRight(target, "/"), "/sse") {
			c, err = mcpclient.NewSSEMCPClient(target)
		} else {
			c, err = mcpclient.NewStreamableHttpClient(target)
		}
		needStart = true
	default:
		parts := strings.Fields(target)
		if len(parts) == 0 {
			return nil, errors.New("empty MCP target")
		}
		// Stdio clients start their subprocess on construction.
		c, err = mcpclient.NewStdioMCPClient(parts[0], nil, parts[1:]...)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "create MCP client for %q", target)
	}

	if needStart {
		if err := c.Start(ctx); err != nil {
			return nil, errors.Wrapf(err, "start MCP transport %q", target)
		}
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "toolbridge", Version: clientVersion}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, errors.Wrapf(err, "initialize MCP session with %q", target)
	}

	return &Client{target: target, mcp: c}, nil
}

// Target returns the dialed endpoint.
func (c *Client) Target() string {
	return c.target
}

// Close shuts the underlying transport down.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// Ping probes endpoint liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.mcp.Ping(ctx)
}

// ListTools performs remote discovery. The server returns descriptors
// already in final form; the schema builder is not involved.
func (c *Client) ListTools(ctx context.Context) ([]tools.Descriptor, error) {
	res, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "list tools")
	}
	descriptors := make([]tools.Descriptor, 0, len(res.Tools))
	for _, t := range res.Tools {
		descriptors = append(descriptors, toDescriptor(t))
	}
	return descriptors, nil
}

// CallTool invokes a named tool on the server and maps its reply into
// a Result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (tools.Result, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "call tool %q", name)
	}
	return toResult(res), nil
}

// DiscoverCatalog lists the server's tools and builds a catalog from
// them, in discovery order.
func (c *Client) DiscoverCatalog(ctx context.Context) (*tools.Catalog, error) {
	descriptors, err := c.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	return tools.NewCatalog(descriptors)
}

package llm

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rathore/toolbridge/tools"
)

// ToolCall is one call proposed by the oracle in structured mode.
// Arguments is the raw JSON argument string; parsing stays with the
// decision layer so that non-conforming output surfaces as
// ErrDecisionParse rather than being silently coerced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Completion is one oracle reply: plain text, and zero or more
// proposed calls when a catalog was offered.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// Options configures a single completion call.
type Options struct {
	Temperature float64
	// Catalog, when set, is offered to the oracle as native tool
	// definitions (structured mode). Nil means freeform text only.
	Catalog *tools.Catalog
}

// Oracle is the completion-generating collaborator that proposes
// decisions and final answers. Implementations must honor ctx
// cancellation; every call is bounded by a caller-supplied timeout.
type Oracle interface {
	Complete(ctx context.Context, messages []Message, opts Options) (*Completion, error)
}

// Client talks to an OpenAI-compatible chat completion endpoint (the
// demos use Groq) through langchaingo.
type Client struct {
	llm   *openai.LLM
	model string
}

var _ Oracle = (*Client)(nil)

// NewClient creates a client for the given endpoint. apiKey must be
// non-empty; credential checks happen at startup, not mid-turn.
func NewClient(baseURL, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("no API key configured")
	}
	llm, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create openai client")
	}
	return &Client{llm: llm, model: model}, nil
}

// Complete sends messages to the endpoint and returns the reply.
func (c *Client) Complete(ctx context.Context, messages []Message, opts Options) (*Completion, error) {
	llmMessages := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		llmMessages = append(llmMessages, toContent(msg))
	}

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.Catalog != nil {
		callOpts = append(callOpts,
			llms.WithTools(ToolDefs(opts.Catalog)),
			llms.WithToolChoice("auto"),
		)
	}

	resp, err := c.llm.GenerateContent(ctx, llmMessages, callOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "llm generate failed")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from llm")
	}

	choice := resp.Choices[0]
	completion := &Completion{Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		completion.ToolCalls = append(completion.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}
	return completion, nil
}

func toContent(msg Message) llms.MessageContent {
	switch msg.Role {
	case RoleSystem:
		return llms.TextParts(llms.ChatMessageTypeSystem, msg.Content)
	case RoleAssistant:
		if msg.ToolCallID != "" {
			// Assistant echo of a structured tool call; Content
			// holds the raw JSON arguments.
			return llms.MessageContent{
				Role: llms.ChatMessageTypeAI,
				Parts: []llms.ContentPart{llms.ToolCall{
					ID:   msg.ToolCallID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      msg.ToolName,
						Arguments: msg.Content,
					},
				}},
			}
		}
		return llms.TextParts(llms.ChatMessageTypeAI, msg.Content)
	case RoleTool:
		return llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{llms.ToolCallResponse{
				ToolCallID: msg.ToolCallID,
				Name:       msg.ToolName,
				Content:    msg.Content,
			}},
		}
	default:
		return llms.TextParts(llms.ChatMessageTypeHuman, msg.Content)
	}
}

// ToolDefs converts a catalog into the typed tool definitions the
// oracle understands natively.
func ToolDefs(catalog *tools.Catalog) []llms.Tool {
	defs := make([]llms.Tool, 0, catalog.Len())
	for _, d := range catalog.List() {
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  json.RawMessage(d.JSONSchema()),
			},
		})
	}
	return defs
}

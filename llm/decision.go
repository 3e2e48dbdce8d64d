package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rathore/toolbridge/tools"
)

// ErrDecisionParse marks an oracle reply that failed to conform to the
// demanded single-JSON-object format. There is no retry and no repair:
// the turn ends with no tool execution.
var ErrDecisionParse = errors.New("decision parse failed")

// Decision is the oracle's (or fallback's) choice of tool for one
// turn. An empty Tool means no tool is needed.
type Decision struct {
	Tool      string
	Arguments map[string]any
}

// DecisionPrompt builds the freeform decision prompt: the rendered
// catalog, the utterance, and the instruction that the reply must be
// exactly one JSON object.
func DecisionPrompt(catalog *tools.Catalog, utterance string) string {
	var sb strings.Builder
	sb.WriteString("You are an AI assistant that can call tools to help users.\n")
	sb.WriteString("Available tools:\n")
	sb.WriteString(catalog.Render(tools.RenderPrompt))
	fmt.Fprintf(&sb, "\nUser query: %q\n", utterance)
	sb.WriteString(`
Based on the user query, determine which tool to use and what parameters to provide.
Respond with ONLY a JSON object in this format:
{
    "tool_name": "tool_name_here",
    "parameters": {"param1": "value1", "param2": "value2"}
}

Do not include any other text in your response.`)
	return sb.String()
}

// decisionReply is the only reply shape freeform mode accepts. The
// function-calling demo historically asked for "function_name", the
// MCP demo for "tool_name"; both are honored.
type decisionReply struct {
	ToolName     string         `json:"tool_name"`
	FunctionName string         `json:"function_name"`
	Parameters   map[string]any `json:"parameters"`
}

// ParseDecision strictly parses a freeform oracle reply. The reply
// must be a single JSON object naming a tool; anything else yields
// ErrDecisionParse. Deviations are deliberately not repaired so that
// oracle non-conformance stays visible.
func ParseDecision(reply string) (Decision, error) {
	var parsed decisionReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &parsed); err != nil {
		return Decision{}, errors.Wrap(ErrDecisionParse, err.Error())
	}
	name := parsed.ToolName
	if name == "" {
		name = parsed.FunctionName
	}
	if name == "" {
		return Decision{}, errors.Wrap(ErrDecisionParse, "reply names no tool")
	}
	args := parsed.Parameters
	if args == nil {
		args = map[string]any{}
	}
	return Decision{Tool: name, Arguments: args}, nil
}

// ParseToolCall turns a structured-mode proposed call into a Decision,
// strictly parsing its JSON argument string.
func ParseToolCall(tc ToolCall) (Decision, error) {
	args := map[string]any{}
	if strings.TrimSpace(tc.Arguments) != "" {
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return Decision{}, errors.Wrap(ErrDecisionParse, err.Error())
		}
	}
	return Decision{Tool: tc.Name, Arguments: args}, nil
}

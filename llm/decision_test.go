package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathore/toolbridge/tools"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    Decision
		wantErr bool
	}{
		{
			name:  "tool_name form",
			reply: `{"tool_name": "get_weather", "parameters": {"city": "Tokyo"}}`,
			want:  Decision{Tool: "get_weather", Arguments: map[string]any{"city": "Tokyo"}},
		},
		{
			name:  "function_name form",
			reply: `{"function_name": "calculate", "parameters": {"operation": "add", "a": 10, "b": 15}}`,
			want:  Decision{Tool: "calculate", Arguments: map[string]any{"operation": "add", "a": 10.0, "b": 15.0}},
		},
		{
			name:  "surrounding whitespace",
			reply: "\n  {\"tool_name\": \"get_user_info\", \"parameters\": {\"user_id\": 2}}  \n",
			want:  Decision{Tool: "get_user_info", Arguments: map[string]any{"user_id": 2.0}},
		},
		{
			name:  "missing parameters defaults to empty map",
			reply: `{"tool_name": "get_weather"}`,
			want:  Decision{Tool: "get_weather", Arguments: map[string]any{}},
		},
		{
			name:    "prose around the object",
			reply:   `Sure! Here is the call: {"tool_name": "get_weather", "parameters": {}}`,
			wantErr: true,
		},
		{
			name:    "no tool named",
			reply:   `{"parameters": {"city": "Tokyo"}}`,
			wantErr: true,
		},
		{
			name:    "not JSON at all",
			reply:   "I would use the weather tool.",
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecision(tt.reply)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDecisionParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseToolCall(t *testing.T) {
	got, err := ParseToolCall(ToolCall{
		ID:        "call_1",
		Name:      "calculate",
		Arguments: `{"operation": "divide", "a": 25, "b": 5}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "calculate", got.Tool)
	assert.Equal(t, 25.0, got.Arguments["a"])

	got, err = ParseToolCall(ToolCall{Name: "get_weather", Arguments: ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, got.Arguments)

	_, err = ParseToolCall(ToolCall{Name: "calculate", Arguments: "{not json"})
	assert.ErrorIs(t, err, ErrDecisionParse)
}

func TestDecisionPrompt(t *testing.T) {
	catalog, err := tools.Builtins().Catalog()
	require.NoError(t, err)

	prompt := DecisionPrompt(catalog, "What's the weather in Tokyo?")

	assert.Contains(t, prompt, "get_weather")
	assert.Contains(t, prompt, "calculate")
	assert.Contains(t, prompt, "get_user_info")
	assert.Contains(t, prompt, `"What's the weather in Tokyo?"`)
	assert.Contains(t, prompt, "ONLY a JSON object")
}

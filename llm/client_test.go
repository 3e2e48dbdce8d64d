package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/rathore/toolbridge/tools"
)

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("https://api.groq.com/openai/v1", "", "llama-3.1-8b-instant")
	assert.Error(t, err)
}

func TestToContent(t *testing.T) {
	got := toContent(Message{Role: RoleSystem, Content: "be brief"})
	assert.Equal(t, llms.ChatMessageTypeSystem, got.Role)

	got = toContent(Message{Role: RoleUser, Content: "hi"})
	assert.Equal(t, llms.ChatMessageTypeHuman, got.Role)

	got = toContent(Message{Role: RoleAssistant, Content: "hello"})
	assert.Equal(t, llms.ChatMessageTypeAI, got.Role)

	got = toContent(Message{
		Role:       RoleAssistant,
		ToolCallID: "call_1",
		ToolName:   "get_weather",
		Content:    `{"city": "Tokyo"}`,
	})
	assert.Equal(t, llms.ChatMessageTypeAI, got.Role)
	require.Len(t, got.Parts, 1)
	tc, ok := got.Parts[0].(llms.ToolCall)
	require.True(t, ok)
	assert.Equal(t, "call_1", tc.ID)
	assert.Equal(t, "get_weather", tc.FunctionCall.Name)
	assert.Equal(t, `{"city": "Tokyo"}`, tc.FunctionCall.Arguments)

	got = toContent(Message{
		Role:       RoleTool,
		ToolCallID: "call_1",
		ToolName:   "get_weather",
		Content:    `{"temperature":28}`,
	})
	assert.Equal(t, llms.ChatMessageTypeTool, got.Role)
	require.Len(t, got.Parts, 1)
	tr, ok := got.Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call_1", tr.ToolCallID)
	assert.Equal(t, `{"temperature":28}`, tr.Content)
}

func TestToolDefs(t *testing.T) {
	catalog, err := tools.Builtins().Catalog()
	require.NoError(t, err)

	defs := ToolDefs(catalog)
	require.Len(t, defs, 3)
	for _, def := range defs {
		assert.Equal(t, "function", def.Type)
		require.NotNil(t, def.Function)
		assert.NotEmpty(t, def.Function.Description)
	}
	assert.Equal(t, "get_weather", defs[0].Function.Name)
	assert.Equal(t, "calculate", defs[1].Function.Name)
	assert.Equal(t, "get_user_info", defs[2].Function.Name)
}

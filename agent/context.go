package agent

import (
	"github.com/google/uuid"

	"github.com/rathore/toolbridge/llm"
	"github.com/rathore/toolbridge/tools"
)

// Context is the per-session conversation state: the message log, the
// most recent result per tool name, and the session id. It is created
// at session start, mutated only by the turn currently executing, and
// discarded at session end. Messages are committed only after the step
// that produced them fully completes, so a canceled step never leaves
// the context half-updated.
type Context struct {
	SessionID   string
	Messages    []llm.Message
	ToolResults map[string]tools.Result
}

// NewContext creates an empty session context with a fresh id.
func NewContext() *Context {
	return &Context{
		SessionID:   uuid.NewString(),
		ToolResults: make(map[string]tools.Result),
	}
}

func (c *Context) append(msgs ...llm.Message) {
	c.Messages = append(c.Messages, msgs...)
}

// recordResult stores the result under its tool name, overwriting any
// prior value for that name.
func (c *Context) recordResult(tool string, result tools.Result) {
	c.ToolResults[tool] = result
}

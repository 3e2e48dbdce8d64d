// Package agent ties decision, dispatch and close-out together into
// per-session turns.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/rathore/toolbridge/dispatch"
	"github.com/rathore/toolbridge/llm"
	"github.com/rathore/toolbridge/tools"
)

// Mode selects the oracle protocol. The two variants are never mixed
// within one turn.
type Mode int

const (
	// ModeFreeform renders the catalog into a prompt and demands a
	// single JSON object back.
	ModeFreeform Mode = iota
	// ModeStructured submits the catalog as typed tool definitions
	// the oracle understands natively.
	ModeStructured
)

const (
	defaultDecisionTemperature = 0.1
	defaultStepTimeout         = 30 * time.Second
)

// Config holds agent configuration. Exactly one of Oracle or Fallback
// drives decisions: the fallback selector is the degraded mode used
// when no credential is available.
type Config struct {
	Oracle     llm.Oracle
	Fallback   *llm.FallbackSelector
	Dispatcher *dispatch.Dispatcher
	Mode       Mode

	// DecisionTemperature applies to decision calls; close-out calls
	// run at the same setting. Zero keeps the mode default (0.1
	// freeform, 0 structured).
	DecisionTemperature float64

	// StepTimeout bounds each oracle call and each tool call.
	StepTimeout time.Duration

	// Verbose prints turn progress to stdout, the demos' narration.
	Verbose bool
}

// Agent runs turns against a fixed catalog and invoker. One Agent may
// serve many concurrent sessions; the catalog is immutable and every
// Context belongs to exactly one session.
type Agent struct {
	oracle      llm.Oracle
	fallback    *llm.FallbackSelector
	dispatcher  *dispatch.Dispatcher
	mode        Mode
	temperature float64
	stepTimeout time.Duration
	verbose     bool
}

// New creates an agent.
func New(cfg Config) (*Agent, error) {
	if cfg.Dispatcher == nil {
		return nil, errors.New("agent requires a dispatcher")
	}
	if cfg.Oracle == nil && cfg.Fallback == nil {
		return nil, errors.New("agent requires an oracle or a fallback selector")
	}
	if cfg.Oracle == nil && cfg.Mode == ModeStructured {
		return nil, errors.New("structured mode requires an oracle")
	}

	a := &Agent{
		oracle:      cfg.Oracle,
		fallback:    cfg.Fallback,
		dispatcher:  cfg.Dispatcher,
		mode:        cfg.Mode,
		temperature: cfg.DecisionTemperature,
		stepTimeout: cfg.StepTimeout,
		verbose:     cfg.Verbose,
	}
	if a.temperature == 0 && a.mode == ModeFreeform {
		a.temperature = defaultDecisionTemperature
	}
	if a.stepTimeout == 0 {
		a.stepTimeout = defaultStepTimeout
	}
	return a, nil
}

// Catalog returns the dispatcher's catalog.
func (a *Agent) Catalog() *tools.Catalog {
	return a.dispatcher.Catalog()
}

// Session is one continuous conversation. Sessions never share
// Contexts; distinct sessions may run concurrently.
type Session struct {
	agent   *Agent
	context *Context
}

// NewSession starts a session with an empty context.
func (a *Agent) NewSession() *Session {
	return &Session{agent: a, context: NewContext()}
}

// Context exposes the session's conversation state.
func (s *Session) Context() *Context {
	return s.context
}

// Turn is the outcome of one utterance-to-answer cycle.
type Turn struct {
	Decision   llm.Decision
	Dispatched bool
	Result     tools.Result
	// Answer is the final natural-language reply. Empty in degraded
	// mode, where no oracle is available for the close-out call.
	Answer string
}

// Run processes one utterance: decision (oracle or fallback), at most
// one validated dispatch, and, only if a tool call produced a result,
// one close-out completion for the final answer. Errors end the turn
// but never the session.
func (s *Session) Run(ctx context.Context, utterance string) (*Turn, error) {
	if s.agent.oracle == nil {
		return s.runFallback(ctx, utterance)
	}
	if s.agent.mode == ModeStructured {
		return s.runStructured(ctx, utterance)
	}
	return s.runFreeform(ctx, utterance)
}

func (s *Session) runFreeform(ctx context.Context, utterance string) (*Turn, error) {
	s.logf("Asking LLM to choose the right tool...")
	prompt := llm.DecisionPrompt(s.agent.Catalog(), utterance)
	completion, err := s.complete(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, llm.Options{
		Temperature: s.agent.temperature,
	})
	if err != nil {
		return nil, err
	}

	decision, err := llm.ParseDecision(completion.Content)
	if err != nil {
		// Non-conforming reply: the turn ends here. No message was
		// produced for the context and no call is placed.
		return nil, err
	}
	s.logf("AI selected: %s with parameters %v", decision.Tool, decision.Arguments)

	args, err := json.Marshal(decision.Arguments)
	if err != nil {
		return nil, errors.Wrap(err, "encode decision arguments")
	}

	// The tool-role message must be preceded by an assistant message
	// carrying the same call id, or the close-out request is malformed.
	callID := newCallID()
	s.context.append(
		llm.Message{Role: llm.RoleUser, Content: utterance},
		llm.Message{Role: llm.RoleAssistant, ToolCallID: callID, ToolName: decision.Tool, Content: string(args)},
	)

	turn := &Turn{Decision: decision}
	if err := s.dispatchInto(ctx, turn, decision, callID); err != nil {
		return turn, err
	}

	answer, err := s.closeOut(ctx)
	if err != nil {
		return turn, err
	}
	turn.Answer = answer
	return turn, nil
}

func (s *Session) runStructured(ctx context.Context, utterance string) (*Turn, error) {
	messages := append(s.history(), llm.Message{Role: llm.RoleUser, Content: utterance})
	completion, err := s.complete(ctx, messages, llm.Options{
		Temperature: s.agent.temperature,
		Catalog:     s.agent.Catalog(),
	})
	if err != nil {
		return nil, err
	}

	if len(completion.ToolCalls) == 0 {
		// The oracle judged no tool necessary; its text is the final
		// answer, and dispatch plus close-out are both skipped.
		s.context.append(
			llm.Message{Role: llm.RoleUser, Content: utterance},
			llm.Message{Role: llm.RoleAssistant, Content: completion.Content},
		)
		return &Turn{Answer: completion.Content}, nil
	}

	tc := completion.ToolCalls[0]
	decision, err := llm.ParseToolCall(tc)
	if err != nil {
		return nil, err
	}
	s.logf("LLM decided to call %s", decision.Tool)

	s.context.append(
		llm.Message{Role: llm.RoleUser, Content: utterance},
		llm.Message{Role: llm.RoleAssistant, ToolCallID: tc.ID, ToolName: tc.Name, Content: tc.Arguments},
	)

	turn := &Turn{Decision: decision}
	if err := s.dispatchInto(ctx, turn, decision, tc.ID); err != nil {
		return turn, err
	}

	answer, err := s.closeOut(ctx)
	if err != nil {
		return turn, err
	}
	turn.Answer = answer
	return turn, nil
}

func (s *Session) runFallback(ctx context.Context, utterance string) (*Turn, error) {
	decision, err := s.agent.fallback.Select(utterance)
	if err != nil {
		return nil, err
	}
	s.logf("Simulated AI choice: %s with parameters %v", decision.Tool, decision.Arguments)

	s.context.append(llm.Message{Role: llm.RoleUser, Content: utterance})

	turn := &Turn{Decision: decision}
	if err := s.dispatchInto(ctx, turn, decision, newCallID()); err != nil {
		return turn, err
	}
	// Degraded mode has no oracle for the close-out call.
	return turn, nil
}

// dispatchInto validates and executes the decision, recording the
// outcome in the context. Validation and transport failures are
// recorded as a tool-role error message and end the turn; in-band
// results (success or error-valued) are recorded and stored under the
// tool name.
func (s *Session) dispatchInto(ctx context.Context, turn *Turn, decision llm.Decision, callID string) error {
	stepCtx, cancel := context.WithTimeout(ctx, s.agent.stepTimeout)
	defer cancel()

	result, err := s.agent.dispatcher.Dispatch(stepCtx, decision)
	if err != nil {
		s.context.append(llm.Message{
			Role:       llm.RoleTool,
			ToolCallID: callID,
			ToolName:   decision.Tool,
			Content:    tools.Errorf("%s", err.Error()).String(),
		})
		return err
	}

	turn.Dispatched = true
	turn.Result = result
	s.logf("Result: %s", result)

	s.context.append(llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: callID,
		ToolName:   decision.Tool,
		Content:    result.String(),
	})
	s.context.recordResult(decision.Tool, result)
	return nil
}

// closeOut issues the final freeform, no-tool completion over the
// full message history. Only called after a tool invocation produced
// a result.
func (s *Session) closeOut(ctx context.Context) (string, error) {
	s.logf("Sending tool result back to LLM for final response...")
	completion, err := s.complete(ctx, s.history(), llm.Options{Temperature: s.agent.temperature})
	if err != nil {
		return "", err
	}
	s.context.append(llm.Message{Role: llm.RoleAssistant, Content: completion.Content})
	return completion.Content, nil
}

func (s *Session) complete(ctx context.Context, messages []llm.Message, opts llm.Options) (*llm.Completion, error) {
	stepCtx, cancel := context.WithTimeout(ctx, s.agent.stepTimeout)
	defer cancel()
	return s.agent.oracle.Complete(stepCtx, messages, opts)
}

func (s *Session) history() []llm.Message {
	// Copy so a completion call never aliases the live slice.
	msgs := make([]llm.Message, len(s.context.Messages))
	copy(msgs, s.context.Messages)
	return msgs
}

func (s *Session) logf(format string, args ...any) {
	if s.agent.verbose {
		fmt.Printf(format+"\n", args...)
	}
}

func newCallID() string {
	return "call_" + uuid.NewString()[:8]
}

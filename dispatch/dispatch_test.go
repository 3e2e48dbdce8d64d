package dispatch

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathore/toolbridge/llm"
	"github.com/rathore/toolbridge/tools"
)

// recordingInvoker records whether Invoke was reached.
type recordingInvoker struct {
	called bool
	result tools.Result
	err    error
}

func (f *recordingInvoker) Invoke(_ context.Context, _ *Plan) (tools.Result, error) {
	f.called = true
	return f.result, f.err
}

// fakeTransport scripts one CallTool response.
type fakeTransport struct {
	result tools.Result
	err    error
}

func (f *fakeTransport) ListTools(context.Context) ([]tools.Descriptor, error) { return nil, nil }
func (f *fakeTransport) Ping(context.Context) error                           { return nil }
func (f *fakeTransport) CallTool(_ context.Context, _ string, _ map[string]any) (tools.Result, error) {
	return f.result, f.err
}

func demoCatalog(t *testing.T) *tools.Catalog {
	t.Helper()
	catalog, err := tools.Builtins().Catalog()
	require.NoError(t, err)
	return catalog
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		decision llm.Decision
		wantErr  error
	}{
		{
			name: "valid call",
			decision: llm.Decision{Tool: "get_weather",
				Arguments: map[string]any{"city": "Tokyo"}},
		},
		{
			name: "valid numeric call with JSON-decoded floats",
			decision: llm.Decision{Tool: "calculate",
				Arguments: map[string]any{"operation": "divide", "a": 25.0, "b": 5.0}},
		},
		{
			name: "integral float accepted for integer param",
			decision: llm.Decision{Tool: "get_user_info",
				Arguments: map[string]any{"user_id": 2.0}},
		},
		{
			name:     "unknown tool",
			decision: llm.Decision{Tool: "send_email", Arguments: map[string]any{}},
			wantErr:  ErrUnknownTool,
		},
		{
			name:     "missing required parameter",
			decision: llm.Decision{Tool: "get_weather", Arguments: map[string]any{}},
			wantErr:  ErrMissingParameter,
		},
		{
			name: "string where number expected",
			decision: llm.Decision{Tool: "calculate",
				Arguments: map[string]any{"operation": "add", "a": "ten", "b": 15.0}},
			wantErr: ErrTypeMismatch,
		},
		{
			name: "fractional value for integer param",
			decision: llm.Decision{Tool: "get_user_info",
				Arguments: map[string]any{"user_id": 1.5}},
			wantErr: ErrTypeMismatch,
		},
		{
			name: "number where string expected",
			decision: llm.Decision{Tool: "get_weather",
				Arguments: map[string]any{"city": 42.0}},
			wantErr: ErrTypeMismatch,
		},
	}

	catalog := demoCatalog(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Validate(tt.decision, catalog)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, plan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.decision.Tool, plan.Tool.Name)
			assert.Equal(t, tt.decision.Arguments, plan.Arguments)
		})
	}
}

// Validation failures must return before the invoker is reached.
func TestDispatch_ValidationShortCircuits(t *testing.T) {
	invoker := &recordingInvoker{}
	d := New(demoCatalog(t), invoker)

	_, err := d.Dispatch(context.Background(), llm.Decision{Tool: "nope"})
	assert.ErrorIs(t, err, ErrUnknownTool)
	assert.False(t, invoker.called)

	_, err = d.Dispatch(context.Background(), llm.Decision{
		Tool: "get_weather", Arguments: map[string]any{}})
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.False(t, invoker.called)
}

func TestDispatch_Direct(t *testing.T) {
	registry := tools.Builtins()
	catalog, err := registry.Catalog()
	require.NoError(t, err)
	d := New(catalog, NewDirectInvoker(registry))

	result, err := d.Dispatch(context.Background(), llm.Decision{
		Tool:      "calculate",
		Arguments: map[string]any{"operation": "divide", "a": 25.0, "b": 5.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result["result"])
}

func TestDirectInvoker_PanicBecomesErrorResult(t *testing.T) {
	registry := tools.NewRegistry()
	require.NoError(t, registry.Register(
		tools.FuncSpec{Name: "explode"},
		func(context.Context, map[string]any) tools.Result { panic("boom") },
	))
	catalog, err := registry.Catalog()
	require.NoError(t, err)

	d := New(catalog, NewDirectInvoker(registry))
	result, err := d.Dispatch(context.Background(), llm.Decision{
		Tool: "explode", Arguments: map[string]any{}})
	require.NoError(t, err)
	assert.True(t, result.IsError())
	assert.Contains(t, result.ErrorText(), "boom")
}

func TestRemoteInvoker(t *testing.T) {
	catalog := demoCatalog(t)

	d := New(catalog, NewRemoteInvoker(&fakeTransport{result: tools.Result{"temperature": 28}}))
	result, err := d.Dispatch(context.Background(), llm.Decision{
		Tool: "get_weather", Arguments: map[string]any{"city": "Tokyo"}})
	require.NoError(t, err)
	assert.Equal(t, 28, result["temperature"])

	d = New(catalog, NewRemoteInvoker(&fakeTransport{err: errors.New("connection reset")}))
	_, err = d.Dispatch(context.Background(), llm.Decision{
		Tool: "get_weather", Arguments: map[string]any{"city": "Tokyo"}})
	assert.ErrorIs(t, err, ErrDispatch)
}

package dispatch

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/rathore/toolbridge/tools"
)

// Invoker executes a validated plan. Exactly one strategy is chosen
// per catalog construction: direct in-process calls, or a round trip
// over a remote transport.
type Invoker interface {
	Invoke(ctx context.Context, plan *Plan) (tools.Result, error)
}

// Transport is the remote endpoint abstraction: discovery, execution
// and a liveness probe. Any implementation providing these three
// operations is interchangeable; the wire mechanics underneath are not
// this package's concern.
type Transport interface {
	ListTools(ctx context.Context) ([]tools.Descriptor, error)
	CallTool(ctx context.Context, name string, args map[string]any) (tools.Result, error)
	Ping(ctx context.Context) error
}

// DirectInvoker calls in-process callables from a registry. Failures
// inside a tool body are captured into an error-form Result and never
// abort the turn.
type DirectInvoker struct {
	registry *tools.Registry
}

// NewDirectInvoker creates a direct invoker over registry.
func NewDirectInvoker(registry *tools.Registry) *DirectInvoker {
	return &DirectInvoker{registry: registry}
}

var _ Invoker = (*DirectInvoker)(nil)

// Invoke runs the callable behind the plan's descriptor. A panicking
// tool body yields an error Result, not a Go error.
func (d *DirectInvoker) Invoke(ctx context.Context, plan *Plan) (result tools.Result, err error) {
	fn, ok := d.registry.Func(plan.Tool.Name)
	if !ok {
		// Catalog and registry are built from the same specs; a miss
		// here means they diverged.
		return nil, errors.Wrapf(ErrUnknownTool, "tool %q has no callable", plan.Tool.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("tool panicked", "tool", plan.Tool.Name, "panic", r)
			result = tools.Errorf("tool %s failed: %v", plan.Tool.Name, r)
			err = nil
		}
	}()

	return fn(ctx, plan.Arguments), nil
}

// RemoteInvoker executes calls over a transport. Transport failures
// surface as ErrDispatch; the session and catalog stay usable for
// subsequent turns.
type RemoteInvoker struct {
	transport Transport
}

// NewRemoteInvoker creates a remote invoker over transport.
func NewRemoteInvoker(transport Transport) *RemoteInvoker {
	return &RemoteInvoker{transport: transport}
}

var _ Invoker = (*RemoteInvoker)(nil)

// Invoke performs one request/response exchange for the plan.
func (r *RemoteInvoker) Invoke(ctx context.Context, plan *Plan) (tools.Result, error) {
	result, err := r.transport.CallTool(ctx, plan.Tool.Name, plan.Arguments)
	if err != nil {
		return nil, errors.Wrapf(errors.Join(ErrDispatch, err), "call tool %q", plan.Tool.Name)
	}
	return result, nil
}

// Package dispatch validates proposed tool calls against a catalog and
// executes them through a pluggable invocation strategy.
package dispatch

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/rathore/toolbridge/llm"
	"github.com/rathore/toolbridge/tools"
)

// Plan is a validated call: the matched descriptor plus the decision's
// arguments, ready for an invoker.
type Plan struct {
	Tool      tools.Descriptor
	Arguments map[string]any
}

// Validate checks a decision against the catalog: the tool must exist,
// every required parameter must be present, and present arguments must
// match their declared kinds.
func Validate(decision llm.Decision, catalog *tools.Catalog) (*Plan, error) {
	descriptor, err := catalog.Lookup(decision.Tool)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownTool, "tool %q", decision.Tool)
	}

	for _, p := range descriptor.Params {
		value, present := decision.Arguments[p.Name]
		if !present {
			if p.Required {
				return nil, errors.Wrapf(ErrMissingParameter,
					"tool %q: parameter %q", descriptor.Name, p.Name)
			}
			continue
		}
		if !kindMatches(p.Kind, value) {
			return nil, errors.Wrapf(ErrTypeMismatch,
				"tool %q: parameter %q is not %s (got %T)",
				descriptor.Name, p.Name, p.Kind, value)
		}
	}

	return &Plan{Tool: descriptor, Arguments: decision.Arguments}, nil
}

// kindMatches accepts the value shapes JSON decoding produces
// (float64, string) alongside plain Go numerics from direct callers.
func kindMatches(kind tools.Kind, value any) bool {
	switch kind {
	case tools.KindString:
		_, ok := value.(string)
		return ok
	case tools.KindNumber:
		_, ok := asFloat(value)
		return ok
	case tools.KindInteger:
		f, ok := asFloat(value)
		return ok && f == float64(int64(f))
	default:
		return false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Dispatcher pairs a catalog with exactly one invoker strategy,
// selected at construction and never mixed. It does not retry; retry
// policy, if any, belongs to the caller.
type Dispatcher struct {
	catalog *tools.Catalog
	invoker Invoker
}

// New creates a dispatcher over catalog using invoker.
func New(catalog *tools.Catalog, invoker Invoker) *Dispatcher {
	return &Dispatcher{catalog: catalog, invoker: invoker}
}

// Catalog returns the dispatcher's catalog.
func (d *Dispatcher) Catalog() *tools.Catalog {
	return d.catalog
}

// Dispatch validates decision and, on success, executes it. Validation
// failures return before the invoker is ever called.
func (d *Dispatcher) Dispatch(ctx context.Context, decision llm.Decision) (tools.Result, error) {
	plan, err := Validate(decision, d.catalog)
	if err != nil {
		return nil, err
	}
	return d.invoker.Invoke(ctx, plan)
}

package tools

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Func is the contract of a local in-process tool body. Failures are
// reported as error-form Results, never as panics or Go errors.
type Func func(ctx context.Context, args map[string]any) Result

// Registry holds the fixed set of local callables and their
// introspected specs, in registration order.
type Registry struct {
	specs []FuncSpec
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds a callable under spec.Name. Duplicate names are
// rejected.
func (r *Registry) Register(spec FuncSpec, fn Func) error {
	if _, ok := r.funcs[spec.Name]; ok {
		return errors.Newf("duplicate function %q", spec.Name)
	}
	r.specs = append(r.specs, spec)
	r.funcs[spec.Name] = fn
	return nil
}

// Func returns the callable registered under name.
func (r *Registry) Func(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Catalog runs the schema builder over every registered callable and
// returns the resulting catalog. Descriptors are rebuilt on each call;
// registries are small and catalogs are built once per process.
func (r *Registry) Catalog() (*Catalog, error) {
	descriptors := make([]Descriptor, 0, len(r.specs))
	for _, spec := range r.specs {
		descriptors = append(descriptors, BuildDescriptor(spec))
	}
	return NewCatalog(descriptors)
}

// Builtins returns the demo tool set: the same three functions the
// demo MCP server exposes, callable directly in-process.
func Builtins() *Registry {
	r := NewRegistry()
	// Registration order is the catalog order.
	must(r.Register(FuncSpec{
		Name: "get_weather",
		Doc:  "Get weather information for a city.",
		Params: []FuncParam{
			{Name: "city", Type: "string"},
		},
	}, getWeather))
	must(r.Register(FuncSpec{
		Name: "calculate",
		Doc:  "Perform basic mathematical operations.",
		Params: []FuncParam{
			{Name: "operation", Type: "string"},
			{Name: "a", Type: "float"},
			{Name: "b", Type: "float"},
		},
	}, calculate))
	must(r.Register(FuncSpec{
		Name: "get_user_info",
		Doc:  "Get user information by ID.",
		Params: []FuncParam{
			{Name: "user_id", Type: "int"},
		},
	}, getUserInfo))
	return r
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func getWeather(_ context.Context, args map[string]any) Result {
	city, ok := args["city"].(string)
	if !ok || city == "" {
		return Errorf("city parameter required")
	}
	weather := map[string]Result{
		"New York": {"temperature": 22, "condition": "sunny", "humidity": 65},
		"London":   {"temperature": 15, "condition": "cloudy", "humidity": 80},
		"Tokyo":    {"temperature": 28, "condition": "rainy", "humidity": 90},
	}
	if data, ok := weather[city]; ok {
		return data
	}
	return Errorf("Weather data not available for %s", city)
}

func calculate(_ context.Context, args map[string]any) Result {
	operation, ok := args["operation"].(string)
	if !ok || operation == "" {
		return Errorf("operation parameter required")
	}
	a, ok := numberArg(args, "a")
	if !ok {
		return Errorf("a parameter required")
	}
	b, ok := numberArg(args, "b")
	if !ok {
		return Errorf("b parameter required")
	}

	var result any
	switch operation {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			result = "Error: Division by zero"
		} else {
			result = a / b
		}
	default:
		result = "Error: Invalid operation"
	}
	return Result{"operation": operation, "a": a, "b": b, "result": result}
}

func getUserInfo(_ context.Context, args map[string]any) Result {
	userID, ok := intArg(args, "user_id")
	if !ok {
		return Errorf("user_id parameter required")
	}
	users := map[int]Result{
		1: {"name": "Alice", "email": "alice@example.com", "role": "admin"},
		2: {"name": "Bob", "email": "bob@example.com", "role": "user"},
		3: {"name": "Charlie", "email": "charlie@example.com", "role": "manager"},
	}
	if user, ok := users[userID]; ok {
		return user
	}
	return Errorf("User %d not found", userID)
}

// numberArg reads a numeric argument. Arguments decoded from JSON
// arrive as float64; direct callers may pass Go ints.
func numberArg(args map[string]any, name string) (float64, bool) {
	switch v := args[name].(type) {
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

func intArg(args map[string]any, name string) (int, bool) {
	f, ok := numberArg(args, name)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

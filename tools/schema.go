package tools

import (
	"fmt"
	"strings"
)

// FuncParam is one parameter of a local callable: its name, declared
// type and whether a default value exists.
type FuncParam struct {
	Name       string
	Type       string
	HasDefault bool
}

// FuncSpec is the introspected shape of a local callable, the input to
// the schema builder.
type FuncSpec struct {
	Name   string
	Doc    string
	Params []FuncParam
}

// BuildDescriptor derives a tool descriptor from a callable's
// parameter list and documentation string. Unknown or missing type
// annotations fall back to string, the conservative default. A
// parameter is required iff it has no default value.
//
// Per-parameter descriptions are the fixed "The <name> parameter"
// template; richer per-parameter docs are intentionally not supported.
func BuildDescriptor(spec FuncSpec) Descriptor {
	desc := strings.TrimSpace(spec.Doc)
	if desc == "" {
		desc = "Function " + spec.Name
	}

	params := make([]Param, 0, len(spec.Params))
	for _, p := range spec.Params {
		params = append(params, Param{
			Name:        p.Name,
			Kind:        kindOf(p.Type),
			Required:    !p.HasDefault,
			Description: fmt.Sprintf("The %s parameter", p.Name),
		})
	}

	return Descriptor{
		Name:        spec.Name,
		Description: desc,
		Params:      params,
	}
}

func kindOf(typ string) Kind {
	switch strings.ToLower(typ) {
	case "int", "int32", "int64", "integer":
		return KindInteger
	case "float", "float32", "float64", "double", "decimal", "number":
		return KindNumber
	default:
		return KindString
	}
}

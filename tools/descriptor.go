package tools

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Kind is the wire type of a tool parameter.
type Kind string

const (
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
)

// Param describes a single tool parameter.
type Param struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// Descriptor is the static description of a callable capability:
// name, description and an ordered parameter schema. Descriptors are
// built once (locally via the schema builder, or remotely via
// discovery) and never mutated afterwards.
type Descriptor struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"parameters"`
}

// Validate checks descriptor internal consistency: a non-empty name
// and unique parameter names.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return errors.New("descriptor has no name")
	}
	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "" {
			return errors.Newf("tool %q: parameter with empty name", d.Name)
		}
		if seen[p.Name] {
			return errors.Newf("tool %q: duplicate parameter %q", d.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Param returns the named parameter, if present.
func (d Descriptor) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// JSONSchema renders the descriptor's parameters as a JSON-schema
// object document, the shape both MCP and function-calling APIs expect.
func (d Descriptor) JSONSchema() json.RawMessage {
	properties := make(map[string]any, len(d.Params))
	required := []string{}
	for _, p := range d.Params {
		properties[p.Name] = map[string]any{
			"type":        string(p.Kind),
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	doc, _ := json.Marshal(map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	})
	return doc
}

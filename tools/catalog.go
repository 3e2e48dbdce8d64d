package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNotFound is returned by Catalog.Lookup for unknown tool names.
var ErrNotFound = errors.New("tool not found")

// RenderStyle selects a Catalog.Render output form.
type RenderStyle int

const (
	// RenderHuman is the diagnostic listing printed by the demos.
	RenderHuman RenderStyle = iota
	// RenderPrompt is the machine form embedded verbatim into
	// oracle prompts: one indented JSON document per tool.
	RenderPrompt
)

// Catalog is the ordered, name-unique set of tool descriptors
// available to a session. It is immutable once built and therefore
// safe for unsynchronized concurrent reads.
type Catalog struct {
	byName *orderedmap.OrderedMap[string, Descriptor]
}

// NewCatalog builds a catalog from descriptors, preserving their
// order. Duplicate names and invalid descriptors are rejected.
func NewCatalog(descriptors []Descriptor) (*Catalog, error) {
	byName := orderedmap.New[string, Descriptor]()
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, ok := byName.Get(d.Name); ok {
			return nil, errors.Newf("duplicate tool %q", d.Name)
		}
		byName.Set(d.Name, d)
	}
	return &Catalog{byName: byName}, nil
}

// Lookup returns the descriptor for name, or ErrNotFound.
func (c *Catalog) Lookup(name string) (Descriptor, error) {
	d, ok := c.byName.Get(name)
	if !ok {
		return Descriptor{}, errors.Wrapf(ErrNotFound, "%q", name)
	}
	return d, nil
}

// List returns all descriptors in insertion order.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, 0, c.byName.Len())
	for pair := c.byName.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of tools in the catalog.
func (c *Catalog) Len() int {
	return c.byName.Len()
}

// Names returns the tool names in insertion order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, c.byName.Len())
	for pair := c.byName.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Render produces a textual form of the catalog. Rendering is pure:
// the same catalog always yields the same output.
func (c *Catalog) Render(style RenderStyle) string {
	switch style {
	case RenderPrompt:
		return c.renderPrompt()
	default:
		return c.renderHuman()
	}
}

func (c *Catalog) renderHuman() string {
	var sb strings.Builder
	for pair := c.byName.Oldest(); pair != nil; pair = pair.Next() {
		d := pair.Value
		fmt.Fprintf(&sb, "- %s: %s\n", d.Name, d.Description)
		for _, p := range d.Params {
			req := "optional"
			if p.Required {
				req = "required"
			}
			fmt.Fprintf(&sb, "    %s: %s (%s)\n", p.Name, p.Kind, req)
		}
	}
	return sb.String()
}

func (c *Catalog) renderPrompt() string {
	var sb strings.Builder
	for pair := c.byName.Oldest(); pair != nil; pair = pair.Next() {
		d := pair.Value
		doc, _ := json.MarshalIndent(map[string]any{
			"name":        d.Name,
			"description": d.Description,
			"parameters":  json.RawMessage(d.JSONSchema()),
		}, "", "  ")
		sb.Write(doc)
		sb.WriteString("\n")
	}
	return sb.String()
}

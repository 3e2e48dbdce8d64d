package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := Builtins().Catalog()
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Descriptor{
		{Name: "a", Description: "first"},
		{Name: "a", Description: "second"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewCatalog_RejectsDuplicateParams(t *testing.T) {
	_, err := NewCatalog([]Descriptor{
		{Name: "a", Params: []Param{{Name: "x"}, {Name: "x"}}},
	})
	require.Error(t, err)
}

func TestCatalog_LookupEveryListedName(t *testing.T) {
	catalog := demoCatalog(t)

	for _, d := range catalog.List() {
		got, err := catalog.Lookup(d.Name)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestCatalog_LookupUnknown(t *testing.T) {
	catalog := demoCatalog(t)

	_, err := catalog.Lookup("no_such_tool")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_ListOrder(t *testing.T) {
	catalog := demoCatalog(t)

	assert.Equal(t, []string{"get_weather", "calculate", "get_user_info"}, catalog.Names())
}

func TestCatalog_RenderIdempotent(t *testing.T) {
	catalog := demoCatalog(t)

	for _, style := range []RenderStyle{RenderHuman, RenderPrompt} {
		first := catalog.Render(style)
		second := catalog.Render(style)
		assert.Equal(t, first, second)
	}
}

func TestCatalog_RenderHuman(t *testing.T) {
	out := demoCatalog(t).Render(RenderHuman)

	assert.Contains(t, out, "- get_weather: Get weather information for a city.")
	assert.Contains(t, out, "city: string (required)")
}

func TestCatalog_RenderPrompt(t *testing.T) {
	out := demoCatalog(t).Render(RenderPrompt)

	// Machine form: one JSON document per tool, parseable as-is.
	assert.Contains(t, out, `"name": "calculate"`)
	assert.Contains(t, out, `"type": "object"`)
}

// Every name listed as required in a schema must be a declared
// property.
func TestDescriptor_RequiredNamesAreProperties(t *testing.T) {
	for _, d := range demoCatalog(t).List() {
		var schema struct {
			Properties map[string]any `json:"properties"`
			Required   []string       `json:"required"`
		}
		require.NoError(t, json.Unmarshal(d.JSONSchema(), &schema))
		for _, name := range schema.Required {
			assert.Contains(t, schema.Properties, name, "tool %s", d.Name)
		}
	}
}

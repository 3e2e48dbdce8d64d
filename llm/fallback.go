package llm

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoDecision is returned when no fallback rule matches; the turn is
// undeterminable and no dispatch is attempted.
var ErrNoDecision = errors.New("no tool decision")

// FallbackSelector is the degraded-mode stand-in for the oracle, used
// only when no credential is configured. It holds a small fixed list
// of keyword rules evaluated against the lower-cased utterance in
// priority order; first match wins. Purely deterministic, so the rest
// of the pipeline stays exercisable without network access.
type FallbackSelector struct {
	rules []fallbackRule
}

type fallbackRule struct {
	keywords []string
	decide   func(lower string) Decision
}

// NewFallbackSelector builds the selector with the demo rule set.
func NewFallbackSelector() *FallbackSelector {
	return &FallbackSelector{rules: []fallbackRule{
		{
			keywords: []string{"weather"},
			decide: func(lower string) Decision {
				return Decision{Tool: "get_weather", Arguments: map[string]any{"city": cityIn(lower)}}
			},
		},
		{
			keywords: []string{"divide", "divided"},
			decide: func(string) Decision {
				return Decision{Tool: "calculate", Arguments: map[string]any{"operation": "divide", "a": 25, "b": 5}}
			},
		},
		{
			keywords: []string{"add", "plus", "calculate"},
			decide: func(string) Decision {
				return Decision{Tool: "calculate", Arguments: map[string]any{"operation": "add", "a": 10, "b": 15}}
			},
		},
		{
			keywords: []string{"user"},
			decide: func(string) Decision {
				return Decision{Tool: "get_user_info", Arguments: map[string]any{"user_id": 2}}
			},
		},
	}}
}

// Select returns the first matching rule's decision, or ErrNoDecision.
func (s *FallbackSelector) Select(utterance string) (Decision, error) {
	lower := strings.ToLower(utterance)
	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.decide(lower), nil
			}
		}
	}
	return Decision{}, errors.Wrapf(ErrNoDecision, "%q", utterance)
}

// cityIn picks the first known demo city named in the utterance,
// defaulting to Tokyo.
func cityIn(lower string) string {
	for _, city := range []string{"New York", "London", "Tokyo"} {
		if strings.Contains(lower, strings.ToLower(city)) {
			return city
		}
	}
	return "Tokyo"
}

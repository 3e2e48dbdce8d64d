package dispatch

import "github.com/cockroachdb/errors"

// Validation errors: produced before any invocation happens.
var (
	// ErrUnknownTool marks a decision naming a tool absent from the
	// catalog.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrMissingParameter marks a decision missing a required
	// parameter of the matched descriptor.
	ErrMissingParameter = errors.New("missing required parameter")
	// ErrTypeMismatch marks an argument whose kind contradicts the
	// descriptor.
	ErrTypeMismatch = errors.New("argument type mismatch")
)

// ErrDispatch marks a transport failure (refused connection, timeout,
// malformed payload) during remote execution. The tool call fails for
// the current turn; session and catalog remain valid.
var ErrDispatch = errors.New("dispatch failed")

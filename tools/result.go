package tools

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of one tool invocation: either a mapping of
// output fields, or the error form carrying an "error" key. The error
// form is a value, not a Go error; a failing tool body never aborts
// the turn that invoked it.
type Result map[string]any

// Errorf builds the error form of a Result.
func Errorf(format string, args ...any) Result {
	return Result{"error": fmt.Sprintf(format, args...)}
}

// IsError reports whether r is the error form.
func (r Result) IsError() bool {
	_, ok := r["error"]
	return ok
}

// ErrorText returns the error reason, or "" for success results.
func (r Result) ErrorText() string {
	if v, ok := r["error"]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

// String renders the result as compact JSON, the form recorded in
// tool-role conversation messages.
func (r Result) String() string {
	data, err := json.Marshal(map[string]any(r))
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(r))
	}
	return string(data)
}

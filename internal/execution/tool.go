// Package execution runs a merged plan's actions in order against a
// tool registry, producing a step-result trace with fail-fast semantics.
package execution

import (
	"context"
	"fmt"
)

// Tool handles one action type. A tool call is one atomic attempt from
// the executor's point of view: it returns output on success or an
// error on failure. Internal retries are the tool's own contract.
type Tool interface {
	// Name returns the action type this tool handles.
	Name() string

	// Run performs the side effect described by params and returns its
	// opaque output.
	Run(ctx context.Context, params map[string]string) (string, error)
}

// Registry maps action types to tools. Registration is external
// configuration; the executor only looks types up.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry holding the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds or replaces the tool for its action type.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Lookup returns the tool for an action type.
func (r *Registry) Lookup(actionType string) (Tool, bool) {
	t, ok := r.tools[actionType]
	return t, ok
}

// Types returns the registered action types.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.tools))
	for t := range r.tools {
		types = append(types, t)
	}
	return types
}

// UnknownActionTypeError reports an action whose type has no registered
// tool. It halts the remaining plan: later steps may depend on earlier
// side effects, so continuing past an unresolvable step risks running
// against a wrong precondition.
type UnknownActionTypeError struct {
	ActionType string
}

func (e *UnknownActionTypeError) Error() string {
	return fmt.Sprintf("unknown action type %q", e.ActionType)
}

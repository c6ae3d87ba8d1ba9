package execution

import (
	"context"
	"log/slog"

	"github.com/conclave-dev/conclave/internal/models"
)

// Executor runs plan actions strictly sequentially: later actions may
// assume the filesystem and tool state left by earlier ones, so no two
// actions ever execute concurrently.
type Executor struct {
	registry *Registry
	logger   *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecLogger sets the executor's logger.
func WithExecLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(registry *Registry, opts ...ExecutorOption) *Executor {
	e := &Executor{registry: registry, logger: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Execute runs the plan's actions in order and returns the trace. On
// the first failure — an unregistered action type or a tool error — the
// remaining actions are never invoked and are recorded as skipped, so
// the trace preserves the full intended plan for audit. The plan itself
// is never mutated.
//
// Executing a blocked plan is a programming error, not a runtime
// condition: Execute panics rather than producing a bogus trace.
func (e *Executor) Execute(ctx context.Context, plan models.Plan) models.ExecutionTrace {
	if plan.Blocked {
		panic("execution: Execute called with a blocked plan")
	}

	trace := make(models.ExecutionTrace, 0, len(plan.Actions))
	for i, action := range plan.Actions {
		tool, ok := e.registry.Lookup(action.Type)
		if !ok {
			err := &UnknownActionTypeError{ActionType: action.Type}
			e.logger.Error("halting plan", "step", i+1, "error", err)
			trace = append(trace, models.StepResult{Action: action, Status: models.StepFailed, Err: err.Error()})
			return skipRemainder(trace, plan.Actions[i+1:])
		}

		output, err := tool.Run(ctx, action.Params)
		if err != nil {
			e.logger.Error("halting plan", "step", i+1, "type", action.Type, "error", err)
			trace = append(trace, models.StepResult{Action: action, Status: models.StepFailed, Output: output, Err: err.Error()})
			return skipRemainder(trace, plan.Actions[i+1:])
		}

		e.logger.Debug("step ok", "step", i+1, "type", action.Type)
		trace = append(trace, models.StepResult{Action: action, Status: models.StepOK, Output: output})
	}
	return trace
}

func skipRemainder(trace models.ExecutionTrace, rest models.Actions) models.ExecutionTrace {
	for _, action := range rest {
		trace = append(trace, models.StepResult{Action: action, Status: models.StepSkipped})
	}
	return trace
}

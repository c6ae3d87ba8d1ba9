// Package session drives one task invocation end to end: preflight,
// memory load, deliberation, merge, optional execution, and the final
// audit write.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/conclave-dev/conclave/internal/council"
	"github.com/conclave-dev/conclave/internal/execution"
	"github.com/conclave-dev/conclave/internal/memory"
	"github.com/conclave-dev/conclave/internal/models"
	"github.com/conclave-dev/conclave/internal/planner"
)

// State is where a controller is in its lifecycle.
type State string

const (
	StateInit         State = "INIT"
	StatePreflight    State = "PREFLIGHT"
	StateMemoryLoaded State = "MEMORY_LOADED"
	StateDeliberated  State = "DELIBERATED"
	StateMerged       State = "MERGED"
	StatePlanOnlyDone State = "PLAN_ONLY_DONE"
	StateExecuted     State = "EXECUTED"
	StateLogged       State = "LOGGED"
)

// outcomeImportance is the importance attached to the session outcome
// event in persistent memory.
const outcomeImportance = 6

// Controller owns the task, plan, and trace for the lifetime of one
// invocation. It keeps no state across invocations; concurrent sessions
// each get their own instance.
type Controller struct {
	coordinator *council.Coordinator
	executor    *execution.Executor
	store       memory.Store
	preflight   func(ctx context.Context)
	logger      *slog.Logger
	now         func() time.Time

	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithPreflight sets the best-effort startup hook invoked before the
// memory load.
func WithPreflight(fn func(ctx context.Context)) Option {
	return func(c *Controller) {
		c.preflight = fn
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a controller for a single invocation.
func New(coordinator *council.Coordinator, executor *execution.Executor, store memory.Store, opts ...Option) *Controller {
	c := &Controller{
		coordinator: coordinator,
		executor:    executor,
		store:       store,
		logger:      slog.Default(),
		now:         time.Now,
		state:       StateInit,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Run drives the full sequence for one task and returns the session
// outcome. Every run ends with exactly one audit write; the returned
// error is non-nil only when that final write fails — losing the audit
// trail is the one failure this package refuses to swallow. A blocked
// plan or a failed execution step is a valid outcome, not an error.
func (c *Controller) Run(ctx context.Context, task models.Task) (models.SessionOutcome, error) {
	startedAt := c.now()

	c.state = StatePreflight
	if c.preflight != nil {
		c.preflight(ctx)
	}

	c.state = StateMemoryLoaded
	summary, err := c.store.ReadSummary(ctx)
	if err != nil {
		// Advisors degrade gracefully with less context.
		c.logger.Warn("memory summary unavailable, continuing with empty summary", "error", err)
		summary = ""
	}

	c.state = StateDeliberated
	proposals := c.coordinator.Deliberate(ctx, task, summary)

	c.state = StateMerged
	plan := planner.Merge(proposals)

	outcome := models.SessionOutcome{Task: task, Plan: plan, StartedAt: startedAt}

	switch {
	case plan.Blocked:
		// Blocked beats mode: neither plan-only nor exec proceeds.
		outcome.Status = models.SessionBlocked
	case task.Mode == models.ModePlan:
		c.state = StatePlanOnlyDone
		outcome.Status = models.SessionPlanned
	default:
		trace := c.executor.Execute(ctx, plan)
		c.state = StateExecuted
		outcome.Trace = trace
		if trace.Failed() {
			outcome.Status = models.SessionFailed
		} else {
			outcome.Status = models.SessionCompleted
		}
	}

	outcome.FinishedAt = c.now()

	if err := c.store.WriteEvent(ctx, outcome.AuditLine(), memory.EventEvent, outcomeImportance); err != nil {
		return outcome, fmt.Errorf("writing session outcome to memory: %w", err)
	}
	c.state = StateLogged
	c.logger.Info("session logged", "status", string(outcome.Status), "actions", len(plan.Actions))

	return outcome, nil
}

package models

import (
	"fmt"
	"time"
)

// SessionStatus is the terminal status of one session.
type SessionStatus string

const (
	// SessionCompleted means the plan executed with every step ok.
	SessionCompleted SessionStatus = "completed"
	// SessionBlocked means the merge produced a blocked plan.
	SessionBlocked SessionStatus = "blocked"
	// SessionFailed means execution halted on a failed step.
	SessionFailed SessionStatus = "failed"
	// SessionPlanned means a plan-only run finished without executing.
	SessionPlanned SessionStatus = "planned"
)

// SessionOutcome is the structured result handed to the audit log at
// session end. One outcome is produced per invocation, success or not.
type SessionOutcome struct {
	Task       Task           `json:"task"`
	Status     SessionStatus  `json:"status"`
	Plan       Plan           `json:"plan"`
	Trace      ExecutionTrace `json:"trace,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// AuditLine renders the one-line event content written to persistent
// memory at session end.
func (o SessionOutcome) AuditLine() string {
	switch o.Status {
	case SessionBlocked:
		return fmt.Sprintf("conclave blocked task: %s (%s)", o.Task.Text, o.Plan.BlockingReason)
	case SessionFailed:
		return fmt.Sprintf("conclave task failed: %s (%s)", o.Task.Text, o.Trace.Summary())
	case SessionPlanned:
		return fmt.Sprintf("conclave planned task: %s (%d actions, not executed)", o.Task.Text, len(o.Plan.Actions))
	default:
		return fmt.Sprintf("conclave completed task: %s (%s)", o.Task.Text, o.Trace.Summary())
	}
}

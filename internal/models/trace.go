package models

import "fmt"

// StepStatus is the outcome of executing one action.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepResult records what happened to one action. Err is present iff
// the status is failed.
type StepResult struct {
	Action Action     `json:"action"`
	Status StepStatus `json:"status"`
	Output string     `json:"output,omitempty"`
	Err    string     `json:"error,omitempty"`
}

// ExecutionTrace is the ordered record of outcomes from executing a
// plan's actions. It is produced once per executed plan and immutable
// after creation.
type ExecutionTrace []StepResult

// Failed reports whether any step in the trace failed.
func (t ExecutionTrace) Failed() bool {
	for _, r := range t {
		if r.Status == StepFailed {
			return true
		}
	}
	return false
}

// FirstError returns the error message of the failing step, or ""
// when no step failed.
func (t ExecutionTrace) FirstError() string {
	for _, r := range t {
		if r.Status == StepFailed {
			return r.Err
		}
	}
	return ""
}

// Summary renders a compact per-step digest for audit logging, e.g.
// "3 steps: ok=1 failed=1 skipped=1".
func (t ExecutionTrace) Summary() string {
	var ok, failed, skipped int
	for _, r := range t {
		switch r.Status {
		case StepOK:
			ok++
		case StepFailed:
			failed++
		case StepSkipped:
			skipped++
		}
	}
	return fmt.Sprintf("%d steps: ok=%d failed=%d skipped=%d", len(t), ok, failed, skipped)
}

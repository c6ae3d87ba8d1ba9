package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Session completed, planned, or blocked
	ExitPlanFailed = 1 // A plan step failed during execution
	ExitError      = 2 // Configuration or runtime error
)

// PlanFailedError indicates that the session ran to completion, but one
// of the plan's steps failed and the remainder was skipped.
type PlanFailedError struct {
	Message string
}

func (e *PlanFailedError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var planErr *PlanFailedError
		if errors.As(err, &planErr) {
			os.Exit(ExitPlanFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}

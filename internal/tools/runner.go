// Package tools provides the built-in side-effecting tools a plan can
// address: shell commands, project test runs, and app scaffolding.
package tools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// runner executes one shell command line and returns its combined
// output. Tools share a runner so tests can substitute a fake.
type runner interface {
	run(ctx context.Context, dir, command string) (string, error)
}

// shellRunner runs command lines through the shell so quoted arguments
// and pipes behave as written in action params.
type shellRunner struct{}

func (shellRunner) run(ctx context.Context, dir, command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", errors.New("empty command")
	}

	//nolint:gosec // commands come from the merged plan, which the operator reviewed or configured
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), fmt.Errorf("command exited with code %d", exitErr.ExitCode())
		}
		return string(output), err
	}
	return string(output), nil
}

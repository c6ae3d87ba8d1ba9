// Package hooks runs operator-configured startup commands. The
// preflight collaborator is best-effort: a failing hook is logged and
// never aborts the session.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// HookConfig defines a single hook command.
type HookConfig struct {
	Command          string `yaml:"command"`
	WorkingDirectory string `yaml:"working_directory,omitempty"`
	ExitCodes        []int  `yaml:"exit_codes,omitempty"`
}

// Runner executes hooks at session start.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a hook runner. A nil logger falls back to
// slog.Default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Preflight runs every hook in order. Failures are logged and swallowed
// so deliberation can proceed; only context cancellation stops the
// sequence early.
func (r *Runner) Preflight(ctx context.Context, hooks []HookConfig) {
	for i, h := range hooks {
		if ctx.Err() != nil {
			r.logger.Warn("preflight interrupted", "remaining", len(hooks)-i)
			return
		}
		if err := r.runHook(ctx, i, h); err != nil {
			r.logger.Warn("preflight hook failed", "index", i, "command", h.Command, "error", err)
		}
	}
}

func (r *Runner) runHook(ctx context.Context, index int, h HookConfig) error {
	if strings.TrimSpace(h.Command) == "" {
		return fmt.Errorf("hook[%d]: empty command", index)
	}

	//nolint:gosec // hook commands are operator-configured, not untrusted input
	cmd := exec.CommandContext(ctx, "sh", "-c", h.Command)
	if h.WorkingDirectory != "" {
		cmd.Dir = h.WorkingDirectory
	}

	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		r.logger.Debug("preflight hook output", "index", index, "output", string(output))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if isAcceptableExit(code, h.ExitCodes) {
				return nil
			}
			return fmt.Errorf("exited with code %d", code)
		}
		return err
	}

	if !isAcceptableExit(0, h.ExitCodes) {
		return fmt.Errorf("exited with code 0 but expected one of %v", h.ExitCodes)
	}
	return nil
}

// isAcceptableExit checks whether exitCode is in the allowed list. An
// empty list defaults to allowing only exit code 0.
func isAcceptableExit(exitCode int, allowedCodes []int) bool {
	if len(allowedCodes) == 0 {
		return exitCode == 0
	}
	for _, code := range allowedCodes {
		if exitCode == code {
			return true
		}
	}
	return false
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conclave-dev/conclave/internal/config"
	"github.com/conclave-dev/conclave/internal/council"
	"github.com/conclave-dev/conclave/internal/execution"
	"github.com/conclave-dev/conclave/internal/hooks"
	"github.com/conclave-dev/conclave/internal/memory"
	"github.com/conclave-dev/conclave/internal/models"
	"github.com/conclave-dev/conclave/internal/session"
	"github.com/conclave-dev/conclave/internal/tools"
	"github.com/conclave-dev/conclave/internal/transcript"
)

var (
	runRepo          string
	runPlanOnly      bool
	runDryRun        bool
	runTranscriptDir string
	runMemoryDir     string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <task...>",
		Short: "Deliberate on a task and execute the approved plan",
		Long: `Deliberate on a task and execute the approved plan.

The task text is put before the full advisor council. If enough advisors
approve and none veto, the merged plan runs step by step; the first
failing step aborts the rest. The outcome is always written to memory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&runRepo, "repo", "", "Repository the task operates on (default: from .conclave.yaml)")
	cmd.Flags().BoolVar(&runPlanOnly, "plan-only", false, "Merge and print the plan without executing it")
	cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Run the full session but discard memory writes")
	cmd.Flags().StringVar(&runTranscriptDir, "transcript-dir", "", "Directory to save session transcripts (default: from .conclave.yaml)")
	cmd.Flags().StringVar(&runMemoryDir, "memory-dir", "", "Persistent memory directory (default: from .conclave.yaml)")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	taskText := strings.Join(args, " ")

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if runRepo != "" {
		cfg.Repo = runRepo
	}
	if runMemoryDir != "" {
		cfg.Memory.Dir = runMemoryDir
	}
	if runTranscriptDir != "" {
		cfg.Transcripts.Dir = runTranscriptDir
	}

	ctrl, closeStore, err := buildController(cfg, runDryRun)
	if err != nil {
		return err
	}
	defer closeStore()

	mode := models.ModeExec
	if runPlanOnly {
		mode = models.ModePlan
	}
	task := models.NewTask(taskText, cfg.Repo, mode)

	outcome, err := ctrl.Run(cmd.Context(), task)
	if err != nil {
		return err
	}

	printOutcome(cmd.OutOrStdout(), outcome)

	if cfg.Transcripts.Dir != "" {
		path, err := transcript.Write(cfg.Transcripts.Dir, transcript.Build(outcome))
		if err != nil {
			return fmt.Errorf("saving transcript: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nTranscript saved to: %s\n", path)
	}

	if outcome.Status == models.SessionFailed {
		return &PlanFailedError{
			Message: fmt.Sprintf("plan execution failed (%s)", outcome.Trace.Summary()),
		}
	}

	return nil
}

// buildController assembles a session controller from config. The
// returned close function releases the memory store; it is a no-op for
// dry runs.
func buildController(cfg *config.Config, dryRun bool) (*session.Controller, func() error, error) {
	logger := slog.Default()

	var store memory.Store
	closeStore := func() error { return nil }
	if dryRun {
		store = memory.NopStore{}
	} else {
		sqlStore, err := memory.Open(cfg.Memory.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening memory store: %w", err)
		}
		store = sqlStore
		closeStore = sqlStore.Close
	}

	coordinator := council.NewCoordinator(council.WithLogger(logger))
	executor := execution.NewExecutor(tools.DefaultRegistry(cfg.Repo), execution.WithExecLogger(logger))

	opts := []session.Option{session.WithLogger(logger)}
	if len(cfg.Hooks) > 0 {
		runner := hooks.NewRunner(logger)
		hookList := cfg.Hooks
		opts = append(opts, session.WithPreflight(func(ctx context.Context) {
			runner.Preflight(ctx, hookList)
		}))
	}

	return session.New(coordinator, executor, store, opts...), closeStore, nil
}

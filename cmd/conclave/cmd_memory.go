package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conclave-dev/conclave/internal/config"
	"github.com/conclave-dev/conclave/internal/memory"
)

func newMemoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect and append to persistent memory",
	}

	cmd.AddCommand(newMemoryShowCommand())
	cmd.AddCommand(newMemoryAddCommand())

	return cmd
}

func newMemoryShowCommand() *cobra.Command {
	var memoryDir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the memory summary advisors receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveMemoryDir(memoryDir)
			if err != nil {
				return err
			}

			store, err := memory.Open(dir)
			if err != nil {
				return fmt.Errorf("opening memory store: %w", err)
			}
			defer store.Close() //nolint:errcheck

			summary, err := store.ReadSummary(cmd.Context())
			if err != nil {
				return fmt.Errorf("reading memory summary: %w", err)
			}
			if summary == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(memory is empty)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&memoryDir, "memory-dir", "", "Persistent memory directory (default: from .conclave.yaml)")

	return cmd
}

func newMemoryAddCommand() *cobra.Command {
	var memoryDir string
	var eventType string
	var importance int

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Record a manual memory entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveMemoryDir(memoryDir)
			if err != nil {
				return err
			}

			store, err := memory.Open(dir)
			if err != nil {
				return fmt.Errorf("opening memory store: %w", err)
			}
			defer store.Close() //nolint:errcheck

			typ := memory.EventType(eventType)
			if err := store.WriteEvent(cmd.Context(), args[0], typ, importance); err != nil {
				return fmt.Errorf("writing memory entry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s entry\n", typ)
			return nil
		},
	}

	cmd.Flags().StringVar(&memoryDir, "memory-dir", "", "Persistent memory directory (default: from .conclave.yaml)")
	cmd.Flags().StringVar(&eventType, "type", "fact", "Entry type: fact, preference, event, insight, task, relationship")
	cmd.Flags().IntVar(&importance, "importance", 5, "Entry importance, 1-10")

	return cmd
}

func resolveMemoryDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	cfg, err := config.Load(".")
	if err != nil {
		return "", err
	}
	return cfg.Memory.Dir, nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conclave-dev/conclave/internal/config"
	"github.com/conclave-dev/conclave/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a conclave project",
		Long: `Initialize a conclave project in the given directory.

Creates a .conclave.yaml with default settings plus the memory and
transcript directories it points at.

Use --interactive to run a guided wizard that collects project settings
before writing the config.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run guided project setup wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .conclave.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive, force bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, ".conclave.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	spec := &wizard.ProjectSpec{
		Repo:          config.DefaultRepo,
		MemoryDir:     config.DefaultMemoryDir,
		TranscriptDir: config.DefaultTranscriptDir,
		GatewayAddr:   config.DefaultGatewayAddr,
	}

	if interactive {
		var err error
		spec, err = wizard.RunInitWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
	}

	content, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return fmt.Errorf("failed to generate .conclave.yaml: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write .conclave.yaml: %w", err)
	}

	// Create the directories the config points at so the first run
	// doesn't have to.
	memoryDir := spec.MemoryDir
	if !filepath.IsAbs(memoryDir) {
		memoryDir = filepath.Join(dir, memoryDir)
	}
	transcriptDir := spec.TranscriptDir
	if !filepath.IsAbs(transcriptDir) {
		transcriptDir = filepath.Join(dir, transcriptDir)
	}
	if err := os.MkdirAll(memoryDir, 0o755); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}
	if err := os.MkdirAll(transcriptDir, 0o755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Initialized conclave project:") //nolint:errcheck
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", configPath)             //nolint:errcheck
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", memoryDir)              //nolint:errcheck
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", transcriptDir)          //nolint:errcheck

	return nil
}

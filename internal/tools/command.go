package tools

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// commandArgs are the decoded params of a "command" action.
type commandArgs struct {
	Name    string `mapstructure:"name"`
	Command string `mapstructure:"command"`
}

// CommandTool runs one shell command line in the repository root.
type CommandTool struct {
	dir    string
	runner runner
}

// NewCommandTool creates a command tool rooted at dir.
func NewCommandTool(dir string) *CommandTool {
	return &CommandTool{dir: dir, runner: shellRunner{}}
}

func (*CommandTool) Name() string { return "command" }

func (t *CommandTool) Run(ctx context.Context, params map[string]string) (string, error) {
	var args commandArgs
	if err := mapstructure.Decode(params, &args); err != nil {
		return "", fmt.Errorf("decoding command params: %w", err)
	}
	if args.Command == "" {
		return "", fmt.Errorf("command action %q has no command", args.Name)
	}
	return t.runner.run(ctx, t.dir, args.Command)
}

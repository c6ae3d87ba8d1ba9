package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
)

// scaffoldArgs are the decoded params of a "scaffold_app" action.
type scaffoldArgs struct {
	Name    string `mapstructure:"name"`
	AppName string `mapstructure:"app_name"`
}

// ScaffoldAppTool scaffolds a Next.js app under apps/ in the repository
// root.
type ScaffoldAppTool struct {
	dir    string
	runner runner
}

// NewScaffoldAppTool creates a scaffold_app tool rooted at dir.
func NewScaffoldAppTool(dir string) *ScaffoldAppTool {
	return &ScaffoldAppTool{dir: dir, runner: shellRunner{}}
}

func (*ScaffoldAppTool) Name() string { return "scaffold_app" }

func (t *ScaffoldAppTool) Run(ctx context.Context, params map[string]string) (string, error) {
	var args scaffoldArgs
	if err := mapstructure.Decode(params, &args); err != nil {
		return "", fmt.Errorf("decoding scaffold_app params: %w", err)
	}
	if args.AppName == "" {
		args.AppName = "conclave-app"
	}

	appsDir := filepath.Join(t.dir, "apps")
	if err := os.MkdirAll(appsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating apps directory: %w", err)
	}

	command := fmt.Sprintf("npx create-next-app@latest %s --yes", args.AppName)
	return t.runner.run(ctx, appsDir, command)
}


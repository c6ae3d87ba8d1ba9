package tools

import (
	"context"
	"os"
	"path/filepath"
)

// RunTestsTool detects the project type in the repository root and runs
// its test suite.
type RunTestsTool struct {
	dir    string
	runner runner
}

// NewRunTestsTool creates a run_tests tool rooted at dir.
func NewRunTestsTool(dir string) *RunTestsTool {
	return &RunTestsTool{dir: dir, runner: shellRunner{}}
}

func (*RunTestsTool) Name() string { return "run_tests" }

func (t *RunTestsTool) Run(ctx context.Context, _ map[string]string) (string, error) {
	command, ok := detectTestCommand(t.dir)
	if !ok {
		return "No tests detected", nil
	}
	return t.runner.run(ctx, t.dir, command)
}

// detectTestCommand picks a test command from markers in the repository
// root. The first match wins.
func detectTestCommand(dir string) (string, bool) {
	exists := func(name string) bool {
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	}

	switch {
	case exists("package.json"):
		return "npm test", true
	case exists("go.mod"):
		return "go test ./...", true
	case hasGlob(dir, "*.csproj") || hasGlob(dir, "*.sln"):
		return "dotnet test", true
	case exists("tests"):
		return "python -m unittest", true
	}
	return "", false
}

func hasGlob(dir, pattern string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	return err == nil && len(matches) > 0
}

package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the command it was asked to run.
type fakeRunner struct {
	dir     string
	command string
	output  string
	err     error
}

func (f *fakeRunner) run(_ context.Context, dir, command string) (string, error) {
	f.dir = dir
	f.command = command
	return f.output, f.err
}

func TestCommandTool(t *testing.T) {
	t.Run("runs the command line", func(t *testing.T) {
		fake := &fakeRunner{output: "hi\n"}
		tool := &CommandTool{dir: "/repo", runner: fake}

		out, err := tool.Run(context.Background(), map[string]string{"name": "Say hi", "command": "echo hi"})
		require.NoError(t, err)
		assert.Equal(t, "hi\n", out)
		assert.Equal(t, "echo hi", fake.command)
		assert.Equal(t, "/repo", fake.dir)
	})

	t.Run("rejects missing command", func(t *testing.T) {
		tool := &CommandTool{dir: ".", runner: &fakeRunner{}}
		_, err := tool.Run(context.Background(), map[string]string{"name": "nothing"})
		assert.ErrorContains(t, err, "has no command")
	})

	t.Run("propagates tool failure", func(t *testing.T) {
		fake := &fakeRunner{output: "partial", err: errors.New("command exited with code 2")}
		tool := &CommandTool{dir: ".", runner: fake}

		out, err := tool.Run(context.Background(), map[string]string{"command": "false"})
		assert.Equal(t, "partial", out)
		assert.ErrorContains(t, err, "exited with code 2")
	})
}

func TestShellRunnerExecutes(t *testing.T) {
	out, err := shellRunner{}.run(context.Background(), t.TempDir(), "echo 'quoted words'")
	require.NoError(t, err)
	assert.Equal(t, "quoted words\n", out)

	_, err = shellRunner{}.run(context.Background(), t.TempDir(), "exit 3")
	assert.ErrorContains(t, err, "exited with code 3")

	_, err = shellRunner{}.run(context.Background(), t.TempDir(), "   ")
	assert.ErrorContains(t, err, "empty command")
}

func TestDetectTestCommand(t *testing.T) {
	touch := func(t *testing.T, dir, name string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	t.Run("npm project", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "package.json")
		cmd, ok := detectTestCommand(dir)
		require.True(t, ok)
		assert.Equal(t, "npm test", cmd)
	})

	t.Run("go project", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "go.mod")
		cmd, ok := detectTestCommand(dir)
		require.True(t, ok)
		assert.Equal(t, "go test ./...", cmd)
	})

	t.Run("dotnet project", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "app.csproj")
		cmd, ok := detectTestCommand(dir)
		require.True(t, ok)
		assert.Equal(t, "dotnet test", cmd)
	})

	t.Run("python tests directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "tests"), 0o755))
		cmd, ok := detectTestCommand(dir)
		require.True(t, ok)
		assert.Equal(t, "python -m unittest", cmd)
	})

	t.Run("npm wins over go", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "package.json")
		touch(t, dir, "go.mod")
		cmd, _ := detectTestCommand(dir)
		assert.Equal(t, "npm test", cmd)
	})

	t.Run("nothing detected", func(t *testing.T) {
		_, ok := detectTestCommand(t.TempDir())
		assert.False(t, ok)
	})
}

func TestRunTestsToolNoopWithoutProject(t *testing.T) {
	tool := &RunTestsTool{dir: t.TempDir(), runner: &fakeRunner{err: errors.New("should not run")}}
	out, err := tool.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "No tests detected", out)
}

func TestScaffoldAppTool(t *testing.T) {
	t.Run("scaffolds under apps with default name", func(t *testing.T) {
		dir := t.TempDir()
		fake := &fakeRunner{output: "created"}
		tool := &ScaffoldAppTool{dir: dir, runner: fake}

		out, err := tool.Run(context.Background(), map[string]string{"name": "Scaffold"})
		require.NoError(t, err)
		assert.Equal(t, "created", out)
		assert.Equal(t, filepath.Join(dir, "apps"), fake.dir)
		assert.Equal(t, "npx create-next-app@latest conclave-app --yes", fake.command)
		assert.DirExists(t, filepath.Join(dir, "apps"))
	})

	t.Run("honors app_name param", func(t *testing.T) {
		fake := &fakeRunner{}
		tool := &ScaffoldAppTool{dir: t.TempDir(), runner: fake}

		_, err := tool.Run(context.Background(), map[string]string{"app_name": "dashboard"})
		require.NoError(t, err)
		assert.Contains(t, fake.command, "create-next-app@latest dashboard")
	})
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry(t.TempDir())
	for _, typ := range []string{"command", "run_tests", "scaffold_app"} {
		_, ok := registry.Lookup(typ)
		assert.True(t, ok, typ)
	}
}

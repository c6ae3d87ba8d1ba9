package hooks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreflightRunsHooksInOrder(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")

	NewRunner(nil).Preflight(context.Background(), []HookConfig{
		{Command: "echo first > " + marker, WorkingDirectory: dir},
		{Command: "echo second >> " + marker, WorkingDirectory: dir},
	})

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestPreflightSwallowsFailures(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")

	// A failing hook must not stop the ones after it.
	NewRunner(nil).Preflight(context.Background(), []HookConfig{
		{Command: "exit 7"},
		{Command: ""},
		{Command: "touch " + marker},
	})

	assert.FileExists(t, marker)
}

func TestIsAcceptableExit(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		allowed []int
		want    bool
	}{
		{name: "default allows zero", code: 0, want: true},
		{name: "default rejects nonzero", code: 1, want: false},
		{name: "explicit list match", code: 2, allowed: []int{2, 3}, want: true},
		{name: "explicit list miss", code: 0, allowed: []int{2, 3}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAcceptableExit(tt.code, tt.allowed))
		})
	}
}

func TestPreflightHonorsExpectedExitCodes(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")

	NewRunner(nil).Preflight(context.Background(), []HookConfig{
		{Command: "exit 3", ExitCodes: []int{3}},
		{Command: "touch " + marker},
	})

	assert.FileExists(t, marker)
}

package tools

import "github.com/conclave-dev/conclave/internal/execution"

// DefaultRegistry returns a registry holding the built-in tools rooted
// at the repository. Registration stays external configuration: callers
// may register fewer or additional tools.
func DefaultRegistry(repoRoot string) *execution.Registry {
	return execution.NewRegistry(
		NewCommandTool(repoRoot),
		NewRunTestsTool(repoRoot),
		NewScaffoldAppTool(repoRoot),
	)
}

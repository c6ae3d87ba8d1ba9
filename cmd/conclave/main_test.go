package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanFailedErrorIsDistinguishable(t *testing.T) {
	var target *PlanFailedError

	err := fmt.Errorf("wrapped: %w", &PlanFailedError{Message: "plan execution failed"})
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "plan execution failed", target.Message)

	assert.False(t, errors.As(errors.New("plain"), &target))
}

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCommand()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"run", "serve", "init", "memory"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

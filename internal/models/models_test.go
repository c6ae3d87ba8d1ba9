package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionKey(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Action
		equal bool
	}{
		{
			name:  "same type and params",
			a:     Action{Type: "command", Params: map[string]string{"command": "echo hi", "name": "A"}},
			b:     Action{Type: "command", Params: map[string]string{"name": "A", "command": "echo hi"}},
			equal: true,
		},
		{
			name:  "origin advisor ignored",
			a:     Action{Type: "run_tests", OriginAdvisor: "Logic"},
			b:     Action{Type: "run_tests", OriginAdvisor: "Pragmatic"},
			equal: true,
		},
		{
			name:  "different param value",
			a:     Action{Type: "command", Params: map[string]string{"command": "echo hi"}},
			b:     Action{Type: "command", Params: map[string]string{"command": "echo bye"}},
			equal: false,
		},
		{
			name:  "different type",
			a:     Action{Type: "command"},
			b:     Action{Type: "run_tests"},
			equal: false,
		},
		{
			name:  "param value containing separator-looking text",
			a:     Action{Type: "command", Params: map[string]string{"a": "x=1", "b": "2"}},
			b:     Action{Type: "command", Params: map[string]string{"a": "x", "b": "1=2"}},
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.equal {
				assert.Equal(t, tt.a.Key(), tt.b.Key())
			} else {
				assert.NotEqual(t, tt.a.Key(), tt.b.Key())
			}
		})
	}
}

func TestProposalMalformed(t *testing.T) {
	tests := []struct {
		name      string
		p         Proposal
		malformed bool
	}{
		{name: "approve with actions", p: Proposal{Vote: VoteApprove, Actions: []Action{{Type: "command"}}}},
		{name: "abstain", p: Proposal{Vote: VoteAbstain}},
		{name: "veto without actions", p: Proposal{Vote: VoteVeto}},
		{name: "missing vote", p: Proposal{}, malformed: true},
		{name: "unknown vote", p: Proposal{Vote: Vote("maybe")}, malformed: true},
		{name: "veto with actions", p: Proposal{Vote: VoteVeto, Actions: []Action{{Type: "command"}}}, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.malformed, tt.p.Malformed())
		})
	}
}

func TestTraceSummaryAndFailed(t *testing.T) {
	trace := ExecutionTrace{
		{Status: StepOK},
		{Status: StepFailed, Err: "boom"},
		{Status: StepSkipped},
	}
	assert.True(t, trace.Failed())
	assert.Equal(t, "3 steps: ok=1 failed=1 skipped=1", trace.Summary())

	clean := ExecutionTrace{{Status: StepOK}, {Status: StepOK}}
	assert.False(t, clean.Failed())
}

func TestNewTaskDefaultsMode(t *testing.T) {
	task := NewTask("do things", "", "")
	assert.Equal(t, ModeExec, task.Mode)

	planTask := NewTask("do things", ".", ModePlan)
	assert.Equal(t, ModePlan, planTask.Mode)
}

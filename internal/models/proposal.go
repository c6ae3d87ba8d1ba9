package models

import (
	"sort"
	"strings"
)

// Vote is an advisor's stance on a task.
type Vote string

const (
	VoteApprove Vote = "approve"
	VoteReject  Vote = "reject"
	VoteAbstain Vote = "abstain"
	VoteVeto    Vote = "veto"
)

// Valid reports whether v is one of the four defined votes.
func (v Vote) Valid() bool {
	switch v {
	case VoteApprove, VoteReject, VoteAbstain, VoteVeto:
		return true
	}
	return false
}

// Action is one unit of planned work addressed to a named tool.
// Actions are immutable once created.
type Action struct {
	Type          string            `json:"type"`
	Params        map[string]string `json:"params,omitempty"`
	OriginAdvisor string            `json:"origin_advisor"`
}

// Key returns a canonical identity for duplicate detection: two actions
// are duplicates when their Type and Params are equal. OriginAdvisor is
// deliberately excluded.
func (a Action) Key() string {
	keys := make([]string, 0, len(a.Params))
	for k := range a.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(a.Type)
	for _, k := range keys {
		b.WriteByte('\x00')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(a.Params[k])
	}
	return b.String()
}

// Proposal is the output of one advisor for one task.
type Proposal struct {
	AdvisorID string   `json:"advisor_id"`
	Vote      Vote     `json:"vote"`
	Rationale string   `json:"rationale,omitempty"`
	Actions   []Action `json:"actions,omitempty"`

	// Risks and UnblockRequirements are audit/operator fields; they never
	// influence the merge beyond being echoed into a blocked plan.
	Risks               []string `json:"risks,omitempty"`
	UnblockRequirements []string `json:"unblock_requirements,omitempty"`
}

// Malformed reports whether the proposal violates its invariants: a
// missing or unknown vote, or actions attached to a veto.
func (p Proposal) Malformed() bool {
	if !p.Vote.Valid() {
		return true
	}
	if p.Vote == VoteVeto && len(p.Actions) > 0 {
		return true
	}
	return false
}

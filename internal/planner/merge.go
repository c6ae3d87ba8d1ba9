// Package planner reduces a set of advisor proposals into one ordered,
// deduplicated, executable plan.
package planner

import (
	"fmt"
	"strings"

	"github.com/conclave-dev/conclave/internal/models"
)

// Quorum returns the minimum number of approve votes needed to unblock a
// plan for a roster of the given size: a majority, ⌈size/2⌉.
func Quorum(rosterSize int) int {
	return (rosterSize + 1) / 2
}

// Merge reduces proposals to a single plan with a conservative policy:
// veto beats majority, majority beats aggregation. A single advisor
// dedicated to risk can therefore always halt an unsafe action set.
//
// The proposals slice is expected in roster order (the coordinator
// guarantees this); aggregation and duplicate tie-breaking follow that
// order.
func Merge(proposals []models.Proposal) models.Plan {
	if plan, vetoed := vetoCheck(proposals); vetoed {
		return plan
	}

	approvals := 0
	for _, p := range proposals {
		if p.Vote == models.VoteApprove {
			approvals++
		}
	}
	if quorum := Quorum(len(proposals)); approvals < quorum {
		return models.Plan{
			Blocked:        true,
			BlockingReason: fmt.Sprintf("insufficient approval: %d of %d advisors approved (quorum %d)", approvals, len(proposals), quorum),
			Proposals:      proposals,
		}
	}

	// Aggregate approved actions in roster order, dropping literal
	// duplicates. The first occurrence wins, keeping the earliest
	// advisor's origin and the relative order of first occurrences.
	var actions models.Actions
	seen := make(map[string]struct{})
	for _, p := range proposals {
		if p.Vote != models.VoteApprove {
			continue
		}
		for _, action := range p.Actions {
			key := action.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			actions = append(actions, action)
		}
	}

	return models.Plan{Actions: actions, Proposals: proposals}
}

// vetoCheck returns a blocked plan naming every vetoing advisor and its
// rationale when at least one proposal vetoes.
func vetoCheck(proposals []models.Proposal) (models.Plan, bool) {
	var reasons []string
	var unblock []string
	for _, p := range proposals {
		if p.Vote != models.VoteVeto {
			continue
		}
		reason := fmt.Sprintf("vetoed by %s", p.AdvisorID)
		if p.Rationale != "" {
			reason += ": " + p.Rationale
		}
		reasons = append(reasons, reason)
		unblock = append(unblock, p.UnblockRequirements...)
	}
	if len(reasons) == 0 {
		return models.Plan{}, false
	}

	return models.Plan{
		Blocked:             true,
		BlockingReason:      strings.Join(reasons, "; "),
		UnblockRequirements: unblock,
		Proposals:           proposals,
	}, true
}

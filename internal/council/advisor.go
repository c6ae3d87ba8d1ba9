// Package council holds the fixed advisor roster and the deliberation
// coordinator that fans a task out to every advisor and collects their
// proposals in roster order.
package council

import (
	"context"

	"github.com/conclave-dev/conclave/internal/models"
)

// Advisor is one perspective in deliberation: a deterministic,
// side-effect-free function from (task, memory summary) to a proposal.
// Determinism is what makes plan-only runs reproducible, so advisors
// must not perform tool calls or memory writes.
type Advisor interface {
	// Name returns the advisor's stable roster identity.
	Name() string

	// Propose maps the task and memory summary to a proposal.
	Propose(ctx context.Context, task models.Task, memorySummary string) (models.Proposal, error)
}

// Roster identities. The order is load-bearing: aggregation and
// duplicate tie-breaking in the merger follow this order, and the quorum
// math assumes a fixed roster size.
const (
	AdvisorLogic       = "Logic"
	AdvisorPragmatic   = "Pragmatic"
	AdvisorSafeguard   = "Safeguard"
	AdvisorEfficiency  = "Efficiency"
	AdvisorHumanImpact = "HumanImpact"
)

// Roster returns the fixed, ordered advisor set. The set is closed:
// quorum depends on a compile-time-known roster size, so there is no
// registration mechanism.
func Roster() []Advisor {
	return []Advisor{
		logicAdvisor{},
		pragmaticAdvisor{},
		safeguardAdvisor{},
		efficiencyAdvisor{},
		humanImpactAdvisor{},
	}
}

// RosterSize is the number of advisors in the fixed roster.
const RosterSize = 5

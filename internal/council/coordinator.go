package council

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/conclave-dev/conclave/internal/models"
)

// Coordinator invokes every advisor in the roster and collects their
// proposals. Advisors are pure and independent, so they are evaluated
// concurrently; the returned slice is in roster order regardless of
// completion order, because ordering is a correctness requirement for
// deterministic downstream merging.
type Coordinator struct {
	roster []Advisor
	logger *slog.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithRoster overrides the default roster. Intended for tests; the
// production roster is the fixed five-member set.
func WithRoster(roster []Advisor) CoordinatorOption {
	return func(c *Coordinator) {
		c.roster = roster
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a coordinator over the fixed roster.
func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		roster: Roster(),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RosterSize returns the number of advisors this coordinator consults.
func (c *Coordinator) RosterSize() int {
	return len(c.roster)
}

// Deliberate asks every advisor for a proposal. An advisor that errors
// or returns malformed output (missing vote, actions on a veto) is
// converted to an abstain proposal with empty actions; the malformation
// is recorded in the rationale but never aborts the deliberation.
func (c *Coordinator) Deliberate(ctx context.Context, task models.Task, memorySummary string) []models.Proposal {
	proposals := make([]models.Proposal, len(c.roster))

	eg, gctx := errgroup.WithContext(ctx)
	for i, advisor := range c.roster {
		eg.Go(func() error {
			proposals[i] = c.consult(gctx, advisor, task, memorySummary)
			return nil
		})
	}
	// Goroutines never return errors; faults are normalized per advisor.
	_ = eg.Wait()

	return proposals
}

// consult invokes one advisor and normalizes its output.
func (c *Coordinator) consult(ctx context.Context, advisor Advisor, task models.Task, memorySummary string) models.Proposal {
	proposal, err := advisor.Propose(ctx, task, memorySummary)
	if err != nil {
		c.logger.Warn("advisor failed, treating as abstain", "advisor", advisor.Name(), "error", err)
		return abstainProposal(advisor.Name(), fmt.Sprintf("advisor fault: %v", err))
	}

	if proposal.Malformed() {
		c.logger.Warn("advisor returned malformed proposal, treating as abstain",
			"advisor", advisor.Name(), "vote", string(proposal.Vote), "actions", len(proposal.Actions))
		return abstainProposal(advisor.Name(), "advisor fault: malformed proposal")
	}

	// The roster identity is authoritative; advisors cannot vote under
	// another member's name.
	proposal.AdvisorID = advisor.Name()
	return proposal
}

func abstainProposal(advisorID, rationale string) models.Proposal {
	return models.Proposal{
		AdvisorID: advisorID,
		Vote:      models.VoteAbstain,
		Rationale: rationale,
	}
}

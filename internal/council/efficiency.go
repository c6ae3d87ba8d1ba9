package council

import (
	"context"

	"github.com/conclave-dev/conclave/internal/models"
)

// efficiencyAdvisor batches related checks and avoids redundant work.
type efficiencyAdvisor struct{}

func (efficiencyAdvisor) Name() string { return AdvisorEfficiency }

func (a efficiencyAdvisor) Propose(_ context.Context, _ models.Task, _ string) (models.Proposal, error) {
	return models.Proposal{
		AdvisorID: a.Name(),
		Vote:      models.VoteApprove,
		Rationale: "Batch related checks and avoid redundant commands.",
		Actions: []models.Action{
			{
				Type:          "command",
				Params:        map[string]string{"name": "Quick health check", "command": "git rev-parse --is-inside-work-tree"},
				OriginAdvisor: a.Name(),
			},
		},
	}, nil
}

package council

import (
	"context"

	"github.com/conclave-dev/conclave/internal/models"
)

// humanImpactAdvisor keeps outputs understandable for operators.
type humanImpactAdvisor struct{}

func (humanImpactAdvisor) Name() string { return AdvisorHumanImpact }

func (a humanImpactAdvisor) Propose(_ context.Context, _ models.Task, _ string) (models.Proposal, error) {
	return models.Proposal{
		AdvisorID: a.Name(),
		Vote:      models.VoteApprove,
		Rationale: "Keep outputs understandable and include operational next steps.",
		Actions: []models.Action{
			{
				Type:          "command",
				Params:        map[string]string{"name": "Emit operator notice", "command": "echo 'HumanImpact: include runbook updates in summary'"},
				OriginAdvisor: a.Name(),
			},
		},
	}, nil
}

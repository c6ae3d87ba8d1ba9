package council

import (
	"context"
	"strings"

	"github.com/conclave-dev/conclave/internal/models"
)

// pragmaticAdvisor prefers the smallest set of changes that satisfies
// the task.
type pragmaticAdvisor struct{}

func (pragmaticAdvisor) Name() string { return AdvisorPragmatic }

func (a pragmaticAdvisor) Propose(_ context.Context, task models.Task, _ string) (models.Proposal, error) {
	var actions []models.Action

	if strings.Contains(strings.ToLower(task.Text), "next") {
		actions = append(actions, models.Action{
			Type:          "scaffold_app",
			Params:        map[string]string{"name": "Scaffold Next.js app", "app_name": "conclave-app"},
			OriginAdvisor: a.Name(),
		})
	}

	actions = append(actions, models.Action{
		Type:          "command",
		Params:        map[string]string{"name": "Show concise summary", "command": "echo 'Pragmatic pass complete'"},
		OriginAdvisor: a.Name(),
	})

	return models.Proposal{
		AdvisorID: a.Name(),
		Vote:      models.VoteApprove,
		Rationale: "Prefer smallest set of changes needed to satisfy the task.",
		Actions:   actions,
	}, nil
}

package council

import (
	"context"
	"strings"

	"github.com/conclave-dev/conclave/internal/models"
)

// logicAdvisor breaks a request into deterministic inspect/verify steps.
type logicAdvisor struct{}

func (logicAdvisor) Name() string { return AdvisorLogic }

func (a logicAdvisor) Propose(_ context.Context, task models.Task, _ string) (models.Proposal, error) {
	actions := []models.Action{
		{
			Type:          "command",
			Params:        map[string]string{"name": "Inspect repository", "command": "git status --short"},
			OriginAdvisor: a.Name(),
		},
		{
			Type:          "command",
			Params:        map[string]string{"name": "Locate relevant files", "command": "rg --files"},
			OriginAdvisor: a.Name(),
		},
	}

	lowered := strings.ToLower(task.Text)
	if strings.Contains(lowered, "test") || strings.Contains(lowered, "verify") {
		actions = append(actions, models.Action{
			Type:          "run_tests",
			Params:        map[string]string{"name": "Run project tests"},
			OriginAdvisor: a.Name(),
		})
	}

	return models.Proposal{
		AdvisorID: a.Name(),
		Vote:      models.VoteApprove,
		Rationale: "Break down request into deterministic inspect/build/verify steps.",
		Actions:   actions,
	}, nil
}

package council

import (
	"context"
	"fmt"
	"strings"

	"github.com/conclave-dev/conclave/internal/models"
)

// safeguardAdvisor is the risk gate. Its veto unconditionally blocks a
// plan regardless of how many other advisors approve.
type safeguardAdvisor struct{}

// blockPatterns are instruction fragments that always trigger a veto.
var blockPatterns = []string{
	"rm -rf /",
	"delete production",
	"drop database",
	"exfiltrate",
	"malware",
}

func (safeguardAdvisor) Name() string { return AdvisorSafeguard }

func (a safeguardAdvisor) Propose(_ context.Context, task models.Task, _ string) (models.Proposal, error) {
	lowered := strings.ToLower(task.Text)
	for _, pattern := range blockPatterns {
		if strings.Contains(lowered, pattern) {
			return models.Proposal{
				AdvisorID: a.Name(),
				Vote:      models.VoteVeto,
				Rationale: fmt.Sprintf("Blocked due to dangerous instruction pattern: %q.", pattern),
				UnblockRequirements: []string{
					"Clarify safe environment and target scope.",
					"Provide explicit approval for destructive operations.",
					"Provide rollback/backup strategy.",
				},
			}, nil
		}
	}

	return models.Proposal{
		AdvisorID: a.Name(),
		Vote:      models.VoteApprove,
		Rationale: "No critical safety violations detected.",
		Risks:     []string{"Always validate command scope before execution."},
	}, nil
}

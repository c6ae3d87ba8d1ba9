package planner

import (
	"fmt"
	"strings"

	"github.com/conclave-dev/conclave/internal/models"
)

// Render formats a plan for terminal and gateway output. Blocked plans
// show the blocking reason and any unblock requirements; executable
// plans show the numbered action list.
func Render(plan models.Plan) string {
	if plan.Blocked {
		lines := []string{"BLOCKED: " + plan.BlockingReason}
		if len(plan.UnblockRequirements) > 0 {
			lines = append(lines, "Unblock requirements:")
			for _, item := range plan.UnblockRequirements {
				lines = append(lines, "- "+item)
			}
		}
		return strings.Join(lines, "\n")
	}

	lines := []string{"Execution Plan:"}
	for i, action := range plan.Actions {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, action.Type, action.Params["name"]))
	}
	return strings.Join(lines, "\n")
}

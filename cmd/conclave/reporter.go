package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/conclave-dev/conclave/internal/models"
	"github.com/conclave-dev/conclave/internal/planner"
)

const (
	colAdvisor = 14
	colVote    = 9
	colStep    = 4
	colStatus  = 9
	colAction  = 30
	totalWidth = 60
)

// printOutcome renders the full session result: the council's votes,
// then either the blocked reason, the plan, or the execution trace.
func printOutcome(w io.Writer, outcome models.SessionOutcome) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("═", totalWidth))   //nolint:errcheck
	fmt.Fprintf(w, " COUNCIL VERDICT\n")                      //nolint:errcheck
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("═", totalWidth)) //nolint:errcheck

	fmt.Fprintf(w, "%s  %s  %s\n", //nolint:errcheck
		padRight("Advisor", colAdvisor),
		padRight("Vote", colVote),
		"Rationale")
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth)) //nolint:errcheck

	for _, p := range outcome.Plan.Proposals {
		fmt.Fprintf(w, "%s  %s  %s\n", //nolint:errcheck
			padRight(p.AdvisorID, colAdvisor),
			padRight(string(p.Vote), colVote),
			truncate(p.Rationale, 60))
	}
	fmt.Fprintln(w) //nolint:errcheck

	switch outcome.Status {
	case models.SessionBlocked, models.SessionPlanned:
		fmt.Fprintln(w, planner.Render(outcome.Plan)) //nolint:errcheck
	default:
		printTrace(w, outcome.Trace)
	}

	duration := outcome.FinishedAt.Sub(outcome.StartedAt)
	fmt.Fprintf(w, "\nStatus:   %s\n", outcome.Status) //nolint:errcheck
	fmt.Fprintf(w, "Duration: %v\n", duration)         //nolint:errcheck
}

func printTrace(w io.Writer, trace models.ExecutionTrace) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth)) //nolint:errcheck
	fmt.Fprintf(w, " EXECUTION TRACE\n")                    //nolint:errcheck
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth)) //nolint:errcheck

	fmt.Fprintf(w, "%s  %s  %s  %s\n", //nolint:errcheck
		padRight("#", colStep),
		padRight("Status", colStatus),
		padRight("Action", colAction),
		"Output")

	for i, step := range trace {
		icon := stepIcon(step.Status)
		name := step.Action.Params["name"]
		if name == "" {
			name = step.Action.Type
		}
		detail := step.Output
		if step.Status == models.StepFailed && step.Err != "" {
			detail = step.Err
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n", //nolint:errcheck
			padRight(fmt.Sprintf("%d", i+1), colStep),
			padRight(fmt.Sprintf("%s %s", icon, step.Status), colStatus),
			padRight(truncateName(name, colAction), colAction),
			truncate(flatten(detail), 60))
	}

	fmt.Fprintf(w, "\n%s\n", trace.Summary()) //nolint:errcheck
}

func stepIcon(status models.StepStatus) string {
	switch status {
	case models.StepOK:
		return "✓"
	case models.StepFailed:
		return "✗"
	default:
		return "-"
	}
}

// flatten collapses multi-line output onto one line for the table.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to maxLen runes, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

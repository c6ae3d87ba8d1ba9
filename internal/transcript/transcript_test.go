package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conclave-dev/conclave/internal/models"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"Hello World", "hello-world"},
		{"task/with/slashes", "taskwithslashes"},
		{"special@chars!", "specialchars"},
		{"", "unnamed"},
		{"  spaces  ", "spaces"},
		{"Mixed-Case_Test", "mixed-case_test"},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			got := sanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 6, 15, 14, 30, 45, 0, time.UTC)
	got := Filename("My Task", ts)
	want := "my-task-20250615-143045.json.gz"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFilename_TruncatesLongTasks(t *testing.T) {
	ts := time.Date(2025, 6, 15, 14, 30, 45, 0, time.UTC)
	got := Filename(strings.Repeat("x", 200), ts)
	want := strings.Repeat("x", maxNameLen) + "-20250615-143045.json.gz"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func sampleOutcome() models.SessionOutcome {
	start := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	action := models.Action{
		Type:          "command",
		Params:        map[string]string{"name": "Check git status", "command": "git status --short"},
		OriginAdvisor: "Logic",
	}
	return models.SessionOutcome{
		Task:   models.NewTask("tidy the repo", "/tmp/repo", models.ModeExec),
		Status: models.SessionCompleted,
		Plan: models.Plan{
			Actions: models.Actions{action},
			Proposals: []models.Proposal{
				{AdvisorID: "Logic", Vote: models.VoteApprove, Rationale: "low risk", Actions: []models.Action{action}},
				{AdvisorID: "Safeguard", Vote: models.VoteApprove, Risks: []string{"none identified"}},
			},
		},
		Trace: models.ExecutionTrace{
			{Action: action, Status: models.StepOK, Output: "clean"},
		},
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}
}

func TestBuild(t *testing.T) {
	tr := Build(sampleOutcome())

	if tr.Task != "tidy the repo" {
		t.Errorf("Task = %q, want %q", tr.Task, "tidy the repo")
	}
	if tr.Status != "completed" {
		t.Errorf("Status = %q, want %q", tr.Status, "completed")
	}
	if tr.DurationMs != 1500 {
		t.Errorf("DurationMs = %d, want %d", tr.DurationMs, 1500)
	}
	if len(tr.Proposals) != 2 {
		t.Fatalf("len(Proposals) = %d, want %d", len(tr.Proposals), 2)
	}
	if tr.Proposals[0].ActionCount != 1 {
		t.Errorf("Proposals[0].ActionCount = %d, want %d", tr.Proposals[0].ActionCount, 1)
	}
	if len(tr.Steps) != 1 {
		t.Fatalf("len(Steps) = %d, want %d", len(tr.Steps), 1)
	}
	if tr.Steps[0].Status != "ok" {
		t.Errorf("Steps[0].Status = %q, want %q", tr.Steps[0].Status, "ok")
	}
	if tr.Steps[0].Name != "Check git status" {
		t.Errorf("Steps[0].Name = %q, want %q", tr.Steps[0].Name, "Check git status")
	}
}

func TestBuild_BlockedCarriesReason(t *testing.T) {
	outcome := sampleOutcome()
	outcome.Status = models.SessionBlocked
	outcome.Plan = models.Plan{
		Blocked:             true,
		BlockingReason:      "vetoed by Safeguard: dangerous instruction",
		UnblockRequirements: []string{"explicit operator approval"},
		Proposals:           outcome.Plan.Proposals,
	}
	outcome.Trace = nil

	tr := Build(outcome)
	if !tr.Blocked {
		t.Error("Blocked = false, want true")
	}
	if tr.BlockingReason != "vetoed by Safeguard: dangerous instruction" {
		t.Errorf("BlockingReason = %q", tr.BlockingReason)
	}
	if len(tr.Steps) != 0 {
		t.Errorf("len(Steps) = %d, want 0", len(tr.Steps))
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()

	tr := Build(sampleOutcome())
	path, err := Write(dir, tr)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if !strings.HasSuffix(path, ".json.gz") {
		t.Errorf("path = %q, want .json.gz suffix", path)
	}

	decoded, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if decoded.Task != tr.Task {
		t.Errorf("Task = %q, want %q", decoded.Task, tr.Task)
	}
	if decoded.DurationMs != tr.DurationMs {
		t.Errorf("DurationMs = %d, want %d", decoded.DurationMs, tr.DurationMs)
	}
	if len(decoded.Proposals) != len(tr.Proposals) {
		t.Errorf("len(Proposals) = %d, want %d", len(decoded.Proposals), len(tr.Proposals))
	}
	if len(decoded.Steps) != len(tr.Steps) {
		t.Errorf("len(Steps) = %d, want %d", len(decoded.Steps), len(tr.Steps))
	}
}

func TestWrite_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	tr := Build(sampleOutcome())
	path, err := Write(dir, tr)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("failed to stat transcript file: %v", err)
	}
}

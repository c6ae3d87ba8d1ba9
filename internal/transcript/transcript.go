package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/conclave-dev/conclave/internal/models"
)

// sanitize replaces characters that are unsafe in filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

const maxNameLen = 48

// Filename returns the transcript filename for a task.
func Filename(taskText string, ts time.Time) string {
	name := sanitizeName(taskText)
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return fmt.Sprintf("%s-%s.json.gz", name, ts.Format("20060102-150405"))
}

// ProposalRecord is one advisor's contribution as persisted in a transcript.
type ProposalRecord struct {
	AdvisorID           string   `json:"advisor_id"`
	Vote                string   `json:"vote"`
	Rationale           string   `json:"rationale,omitempty"`
	ActionCount         int      `json:"action_count"`
	Risks               []string `json:"risks,omitempty"`
	UnblockRequirements []string `json:"unblock_requirements,omitempty"`
}

// StepRecord is one executed plan step as persisted in a transcript.
type StepRecord struct {
	ActionType string `json:"action_type"`
	Name       string `json:"name,omitempty"`
	Origin     string `json:"origin_advisor,omitempty"`
	Status     string `json:"status"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SessionTranscript is the durable record of one deliberation session.
type SessionTranscript struct {
	Task                string           `json:"task"`
	RepoPath            string           `json:"repo_path"`
	Mode                string           `json:"mode"`
	Status              string           `json:"status"`
	StartedAt           time.Time        `json:"started_at"`
	FinishedAt          time.Time        `json:"finished_at"`
	DurationMs          int64            `json:"duration_ms"`
	Blocked             bool             `json:"blocked"`
	BlockingReason      string           `json:"blocking_reason,omitempty"`
	UnblockRequirements []string         `json:"unblock_requirements,omitempty"`
	Proposals           []ProposalRecord `json:"proposals"`
	Steps               []StepRecord     `json:"steps,omitempty"`
}

// Build constructs a SessionTranscript from a finished session outcome.
func Build(outcome models.SessionOutcome) *SessionTranscript {
	t := &SessionTranscript{
		Task:                outcome.Task.Text,
		RepoPath:            outcome.Task.RepoPath,
		Mode:                string(outcome.Task.Mode),
		Status:              string(outcome.Status),
		StartedAt:           outcome.StartedAt,
		FinishedAt:          outcome.FinishedAt,
		DurationMs:          outcome.FinishedAt.Sub(outcome.StartedAt).Milliseconds(),
		Blocked:             outcome.Plan.Blocked,
		BlockingReason:      outcome.Plan.BlockingReason,
		UnblockRequirements: outcome.Plan.UnblockRequirements,
	}

	for _, p := range outcome.Plan.Proposals {
		t.Proposals = append(t.Proposals, ProposalRecord{
			AdvisorID:           p.AdvisorID,
			Vote:                string(p.Vote),
			Rationale:           p.Rationale,
			ActionCount:         len(p.Actions),
			Risks:               p.Risks,
			UnblockRequirements: p.UnblockRequirements,
		})
	}

	for _, step := range outcome.Trace {
		rec := StepRecord{
			ActionType: step.Action.Type,
			Name:       step.Action.Params["name"],
			Origin:     step.Action.OriginAdvisor,
			Status:     string(step.Status),
			Output:     step.Output,
		}
		if step.Err != "" {
			rec.Error = step.Err
		}
		t.Steps = append(t.Steps, rec)
	}

	return t
}

// Write serializes a SessionTranscript and writes it, gzip-compressed, to dir.
func Write(dir string, t *SessionTranscript) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	name := Filename(t.Task, t.StartedAt)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create transcript: %w", err)
	}

	zw := gzip.NewWriter(f)
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		zw.Close()
		f.Close()
		return "", fmt.Errorf("encode transcript: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush transcript: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return path, nil
}

// Read loads a gzip-compressed transcript back from disk.
func Read(path string) (*SessionTranscript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress transcript: %w", err)
	}
	defer zr.Close()

	var t SessionTranscript
	if err := json.NewDecoder(zr).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &t, nil
}

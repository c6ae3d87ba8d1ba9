package models

// Mode selects how far a session goes after merging.
type Mode string

const (
	// ModePlan stops after the merge and prints the plan.
	ModePlan Mode = "plan"
	// ModeExec executes the merged plan against the tool registry.
	ModeExec Mode = "exec"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModePlan || m == ModeExec
}

// Task is the immutable input to one session. It is created once per
// invocation and never mutated.
type Task struct {
	Text     string `json:"text"`
	RepoPath string `json:"repo_path,omitempty"`
	Mode     Mode   `json:"mode"`
}

// NewTask builds a task, defaulting the mode to exec.
func NewTask(text, repoPath string, mode Mode) Task {
	if !mode.Valid() {
		mode = ModeExec
	}
	return Task{Text: text, RepoPath: repoPath, Mode: mode}
}

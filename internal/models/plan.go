package models

// Plan is the single ordered, deduplicated action sequence produced by
// merging proposals. A blocked plan carries no actions and must not be
// executed.
type Plan struct {
	Actions        Actions `json:"actions,omitempty"`
	Blocked        bool    `json:"blocked"`
	BlockingReason string  `json:"blocking_reason,omitempty"`

	// UnblockRequirements lists what a vetoing advisor asked for before
	// it would let the task proceed.
	UnblockRequirements []string `json:"unblock_requirements,omitempty"`

	// Proposals preserves the full deliberation for audit output. It is
	// printed, never persisted as a standalone entity.
	Proposals []Proposal `json:"proposals,omitempty"`
}

// Actions is an ordered sequence of actions.
type Actions []Action

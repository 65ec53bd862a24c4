package decision

import "guardian/internal/event"

// OutcomeKind distinguishes prompts (awaiting a human response) from feedback
// (closing message for a prior prompt).
type OutcomeKind string

const (
	OutcomePrompt   OutcomeKind = "prompt"
	OutcomeFeedback OutcomeKind = "feedback"
)

// Outcome is the engine's only product. Prompts carry the action choices and
// the correlation context a manual response must echo back; feedback carries
// neither.
type Outcome struct {
	Kind    OutcomeKind        `json:"kind"`
	To      string             `json:"to"`
	Message string             `json:"message"`
	Actions []string           `json:"actions,omitempty"`
	Context *event.Correlation `json:"context,omitempty"`
}

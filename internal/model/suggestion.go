package model

import (
	"time"

	"github.com/google/uuid"
)

// SuggestionState is the lifecycle of a proposed action plan.
type SuggestionState string

const (
	SuggestionPending   SuggestionState = "pending"
	SuggestionExecuted  SuggestionState = "executed"
	SuggestionDismissed SuggestionState = "dismissed"
	SuggestionFailed    SuggestionState = "failed"
)

// Terminal reports whether the state ends the suggestion's lifecycle.
func (s SuggestionState) Terminal() bool {
	return s == SuggestionExecuted || s == SuggestionDismissed || s == SuggestionFailed
}

// Suggestion is a proposed action plan awaiting (or having received) human
// approval. At most one Suggestion exists in a non-terminal state at any
// instant; PulseMachine enforces this by owning the field exclusively.
type Suggestion struct {
	ID          string
	Description string
	Confidence  float64
	Plan        ActionPlan
	State       SuggestionState
	CreatedAt   time.Time
	// ReplayPath is filled in after a replay clip is rendered for a
	// terminal-state suggestion; empty until then.
	ReplayPath string
	// LossyUndo is set when the plan's last action's reverse is a
	// truncated approximation (see Type's 10-backspace cap).
	LossyUndo bool
}

// NewSuggestion creates a Pending suggestion with a fresh identifier.
func NewSuggestion(description string, confidence float64, plan ActionPlan, now time.Time) Suggestion {
	return Suggestion{
		ID:          uuid.NewString(),
		Description: description,
		Confidence:  confidence,
		Plan:        plan,
		State:       SuggestionPending,
		CreatedAt:   now,
	}
}

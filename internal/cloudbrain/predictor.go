// Package cloudbrain is the client side of the remote prediction contract:
// given a batch of frames and a capture context, ask a vision model what
// the user probably wants to do next. The model itself is out of scope;
// everything here is the plumbing to reach it.
package cloudbrain

import (
	"context"
	"time"

	"github.com/pulseagent/pulseagent/internal/model"
)

// DefaultTimeout is intentionally tight (500ms), not the more generous
// figure a batch client might use: this is a client embedded in a
// real-time perception loop, and a predictor that can stall Capturing for
// five seconds is worse than one that simply declines more often.
const DefaultTimeout = 500 * time.Millisecond

// DefaultMinConfidence is the confidence floor below which a prediction is
// silently discarded.
const DefaultMinConfidence = 0.80

// CloudRegion mirrors model.Region on the wire (JSON field names match the
// predictor HTTP contract, which is intentionally more permissive/loose
// than our internal Region type).
type CloudRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CloudAction is one entry of the predictor's "actions" array, in its raw
// wire shape. PlanTranslator normalizes these into model.Action; this
// package only parses and never interprets verbs.
type CloudAction struct {
	Type          string       `json:"type"`
	Target        string       `json:"target,omitempty"`
	Region        *CloudRegion `json:"region,omitempty"`
	X             *int         `json:"x,omitempty"`
	Y             *int         `json:"y,omitempty"`
	Text          *string      `json:"text,omitempty"`
	Keys          *string      `json:"keys,omitempty"`
	SourceRegion  *CloudRegion `json:"sourceRegion,omitempty"`
	TargetRegion  *CloudRegion `json:"targetRegion,omitempty"`
	Direction     *string      `json:"direction,omitempty"`
	Amount        *int         `json:"amount,omitempty"`
}

// Coordinates is the legacy single-action form's coordinate pair.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Prediction is the normalized result of a predictor call: either the
// array form (Actions populated) or the legacy single-action form
// (Action/Coordinates populated), never both meaningfully.
type Prediction struct {
	Confidence  float64       `json:"confidence"`
	Description string        `json:"description"`
	Actions     []CloudAction `json:"actions,omitempty"`

	// Legacy single-action back-compat form.
	Suggestion  *string      `json:"suggestion,omitempty"`
	Action      *string      `json:"action,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// IsLegacyForm reports whether the response used the single-action pair
// instead of the actions array.
func (p *Prediction) IsLegacyForm() bool {
	return p != nil && p.Action != nil && p.Coordinates != nil
}

// Predictor asks the remote model what to do next. A nil Prediction with a
// nil error means "no prediction" (timeout, transport error, unparseable
// body, non-2xx) fold into one outcome so PulseEngine has a single
// branch to handle.
type Predictor interface {
	Predict(ctx context.Context, frames []model.Frame, cctx model.CaptureContext) (*Prediction, error)
}

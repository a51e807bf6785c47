package model

import (
	"strings"
	"unicode/utf8"
)

// ActionType tags the variant carried by an Action.
type ActionType string

const (
	ActionClick       ActionType = "click"
	ActionRightClick  ActionType = "right_click"
	ActionDoubleClick ActionType = "double_click"
	ActionTypeText    ActionType = "type"
	ActionKeyChord    ActionType = "key_chord"
	ActionDrag        ActionType = "drag"
	ActionScroll      ActionType = "scroll"
)

// ScrollDirection is one of the two scroll axes the predictor may request.
type ScrollDirection string

const (
	ScrollUp   ScrollDirection = "up"
	ScrollDown ScrollDirection = "down"
)

func (d ScrollDirection) opposite() ScrollDirection {
	if d == ScrollUp {
		return ScrollDown
	}
	return ScrollUp
}

// Action is a tagged variant: exactly one of the fields below is
// meaningful, selected by Type. Every action carries a human-readable
// Target label. Click/RightClick/DoubleClick/Type/KeyChord/Scroll carry a
// TargetRegion; Drag carries Source/Destination instead.
type Action struct {
	Type ActionType

	Target       string
	TargetRegion *Region

	// Type
	Text string

	// KeyChord — "+"-separated tokens, e.g. "ctrl+shift+s"
	Keys string

	// Drag
	Source      Region
	Destination Region

	// Scroll
	Direction ScrollDirection
	Amount    int
}

// ActionPlan is an ordered, finite sequence of Actions. Empty plans are
// valid but PulseEngine never executes them: a prediction that translates
// to an empty plan returns the machine to Idle without a Suggestion.
type ActionPlan []Action

// Reverse returns the best-effort undo of the action and whether one
// exists at all. Click, RightClick, DoubleClick, and KeyChord have no
// reverse. Type reverses to a KeyChord of one backspace per rune, capped
// at 10 (a lossy undo for longer strings, reported by LossyUndo rather
// than by the returned bool); an empty Type has no reverse.
// Drag reverses to Drag with source and destination swapped. Scroll
// reverses to the opposite direction with the same amount.
func (a Action) Reverse() (Action, bool) {
	switch a.Type {
	case ActionTypeText:
		count := utf8.RuneCountInString(a.Text)
		if count > 10 {
			count = 10
		}
		if count == 0 {
			return Action{}, false
		}
		tokens := make([]string, count)
		for i := range tokens {
			tokens[i] = "backspace"
		}
		return Action{
			Type:         ActionKeyChord,
			Target:       a.Target,
			TargetRegion: a.TargetRegion,
			Keys:         strings.Join(tokens, "+"),
		}, true
	case ActionDrag:
		return Action{
			Type:        ActionDrag,
			Target:      a.Target,
			Source:      a.Destination,
			Destination: a.Source,
		}, true
	case ActionScroll:
		return Action{
			Type:         ActionScroll,
			Target:       a.Target,
			TargetRegion: a.TargetRegion,
			Direction:    a.Direction.opposite(),
			Amount:       a.Amount,
		}, true
	default:
		return Action{}, false
	}
}

// LossyUndo reports whether this action's reverse (if any) is a truncated
// approximation of the true undo, as is the case for Type longer than 10
// characters.
func (a Action) LossyUndo() bool {
	return a.Type == ActionTypeText && utf8.RuneCountInString(a.Text) > 10
}

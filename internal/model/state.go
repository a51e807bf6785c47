package model

// PulseState is one of the seven states PulseMachine cycles through.
type PulseState string

const (
	StateIdle             PulseState = "idle"
	StateCapturing        PulseState = "capturing"
	StateIntentDetected   PulseState = "intent_detected"
	StateProcessingCloud  PulseState = "processing_cloud"
	StateAwaitingApproval PulseState = "awaiting_approval"
	StateExecuting        PulseState = "executing"
	StateCooling          PulseState = "cooling"
)

// transitions enumerates the only allowed next-states for each state, per
// the transition table. Any pair not present here is rejected.
var transitions = map[PulseState]map[PulseState]bool{
	StateIdle:             {StateCapturing: true},
	StateCapturing:        {StateIntentDetected: true, StateIdle: true},
	StateIntentDetected:   {StateProcessingCloud: true, StateCapturing: true},
	StateProcessingCloud:  {StateAwaitingApproval: true, StateIdle: true},
	StateAwaitingApproval: {StateExecuting: true, StateIdle: true},
	StateExecuting:        {StateCooling: true, StateIdle: true},
	StateCooling:          {StateIdle: true},
}

// CanTransition reports whether moving from `from` to `to` is permitted.
func CanTransition(from, to PulseState) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	return next[to]
}
